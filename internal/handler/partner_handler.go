package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/freshport/freshport/internal/repository"
	"github.com/freshport/freshport/internal/service"
)

type PartnerHandler struct {
	svc *service.PartnerService
}

func NewPartnerHandler(svc *service.PartnerService) *PartnerHandler {
	return &PartnerHandler{svc: svc}
}

// --- Farmers ---

func (h *PartnerHandler) CreateFarmer(c *gin.Context) {
	var req service.FarmerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}
	farmer, err := h.svc.CreateFarmer(req, actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, farmer)
}

func (h *PartnerHandler) GetFarmer(c *gin.Context) {
	farmer, err := h.svc.GetFarmer(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, farmer)
}

func (h *PartnerHandler) UpdateFarmer(c *gin.Context) {
	var req service.FarmerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}
	farmer, err := h.svc.UpdateFarmer(c.Param("id"), req, actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, farmer)
}

func (h *PartnerHandler) DeleteFarmer(c *gin.Context) {
	if err := h.svc.DeleteFarmer(c.Param("id"), actor(c)); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"deleted": true})
}

func (h *PartnerHandler) ListFarmers(c *gin.Context) {
	page, size := pagination(c)
	params := repository.FarmerListParams{
		FarmerType: c.Query("farmer_type"),
		Region:     c.Query("region"),
		ActiveOnly: c.Query("active") == "true",
		Keyword:    c.Query("keyword"),
		Page:       page,
		Size:       size,
	}
	farmers, total, err := h.svc.ListFarmers(params)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, paginated(farmers, total, page, size))
}

// --- Customers ---

func (h *PartnerHandler) CreateCustomer(c *gin.Context) {
	var req service.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}
	customer, err := h.svc.CreateCustomer(req, actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, customer)
}

func (h *PartnerHandler) GetCustomer(c *gin.Context) {
	customer, err := h.svc.GetCustomer(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, customer)
}

func (h *PartnerHandler) UpdateCustomer(c *gin.Context) {
	var req service.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}
	customer, err := h.svc.UpdateCustomer(c.Param("id"), req, actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, customer)
}

func (h *PartnerHandler) DeleteCustomer(c *gin.Context) {
	if err := h.svc.DeleteCustomer(c.Param("id"), actor(c)); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"deleted": true})
}

func (h *PartnerHandler) ListCustomers(c *gin.Context) {
	page, size := pagination(c)
	params := repository.CustomerListParams{
		CustomerType: c.Query("customer_type"),
		ActiveOnly:   c.Query("active") == "true",
		Keyword:      c.Query("keyword"),
		Page:         page,
		Size:         size,
	}
	customers, total, err := h.svc.ListCustomers(params)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, paginated(customers, total, page, size))
}

package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/freshport/freshport/internal/repository"
	"github.com/freshport/freshport/internal/service"
)

type OrderHandler struct {
	svc *service.OrderService
}

func NewOrderHandler(svc *service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// Create handles POST /orders/api/create/.
func (h *OrderHandler) Create(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}
	order, err := h.svc.CreateOrder(req, actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, order)
}

func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.svc.GetOrder(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, order)
}

func (h *OrderHandler) List(c *gin.Context) {
	page, size := pagination(c)
	params := repository.OrderListParams{
		OrderType:     c.Query("order_type"),
		Status:        c.Query("status"),
		PaymentStatus: c.Query("payment_status"),
		FarmerID:      c.Query("farmer_id"),
		CustomerID:    c.Query("customer_id"),
		Keyword:       c.Query("keyword"),
		Page:          page,
		Size:          size,
	}
	orders, total, err := h.svc.ListOrders(params)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, paginated(orders, total, page, size))
}

func (h *OrderHandler) Update(c *gin.Context) {
	var req service.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}
	order, err := h.svc.UpdateOrder(c.Param("id"), req, actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, order)
}

func (h *OrderHandler) ChangeStatus(c *gin.Context) {
	var req service.StatusChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}
	order, err := h.svc.ChangeStatus(c.Param("id"), req, actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, order)
}

func (h *OrderHandler) StatusHistory(c *gin.Context) {
	history, err := h.svc.ListStatusHistory(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, history)
}

func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteOrder(c.Param("id"), actor(c)); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"deleted": true})
}

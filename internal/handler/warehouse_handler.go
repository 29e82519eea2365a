package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/freshport/freshport/internal/service"
)

type WarehouseHandler struct {
	svc *service.WarehouseService
}

func NewWarehouseHandler(svc *service.WarehouseService) *WarehouseHandler {
	return &WarehouseHandler{svc: svc}
}

func (h *WarehouseHandler) Create(c *gin.Context) {
	var req service.WarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}
	warehouse, err := h.svc.CreateWarehouse(req, actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, warehouse)
}

func (h *WarehouseHandler) Get(c *gin.Context) {
	warehouse, err := h.svc.GetWarehouse(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, warehouse)
}

func (h *WarehouseHandler) Update(c *gin.Context) {
	var req service.WarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}
	warehouse, err := h.svc.UpdateWarehouse(c.Param("id"), req, actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, warehouse)
}

// Delete removes an unused warehouse or deactivates one with history.
func (h *WarehouseHandler) Delete(c *gin.Context) {
	deactivated, err := h.svc.DeleteWarehouse(c.Param("id"), actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"deleted": !deactivated, "deactivated": deactivated})
}

func (h *WarehouseHandler) List(c *gin.Context) {
	page, size := pagination(c)
	warehouses, total, err := h.svc.ListWarehouses(c.Query("active") == "true", c.Query("keyword"), page, size)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, paginated(warehouses, total, page, size))
}

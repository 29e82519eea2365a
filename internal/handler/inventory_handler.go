package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/freshport/freshport/internal/repository"
	"github.com/freshport/freshport/internal/service"
)

type InventoryHandler struct {
	svc *service.InventoryService
}

func NewInventoryHandler(svc *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// CreateMovementBatch handles POST /inventory/api/movements/create/.
func (h *InventoryHandler) CreateMovementBatch(c *gin.Context) {
	var req service.MovementBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}
	result, err := h.svc.RecordMovementBatch(req, actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, result)
}

// CreateMovement handles a single-line movement append.
func (h *InventoryHandler) CreateMovement(c *gin.Context) {
	var req service.MovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}
	movement, err := h.svc.RecordMovement(req, actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, movement)
}

func (h *InventoryHandler) ListMovements(c *gin.Context) {
	page, size := pagination(c)
	params := repository.MovementListParams{
		MovementType: c.Query("movement_type"),
		WarehouseID:  c.Query("warehouse_id"),
		ProductID:    c.Query("product_id"),
		Page:         page,
		Size:         size,
	}
	movements, total, err := h.svc.ListMovements(params)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, paginated(movements, total, page, size))
}

func (h *InventoryHandler) GetMovement(c *gin.Context) {
	movement, err := h.svc.GetMovement(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, movement)
}

func (h *InventoryHandler) ListStock(c *gin.Context) {
	page, size := pagination(c)
	params := repository.StockListParams{
		WarehouseID:  c.Query("warehouse_id"),
		ProductID:    c.Query("product_id"),
		LowStockOnly: c.Query("low_stock") == "true",
		Page:         page,
		Size:         size,
	}
	stocks, total, err := h.svc.ListStock(params)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, paginated(stocks, total, page, size))
}

func (h *InventoryHandler) GetStock(c *gin.Context) {
	stock, err := h.svc.GetStock(c.Query("warehouse_id"), c.Query("product_id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, stock)
}

func (h *InventoryHandler) SetStockLevels(c *gin.Context) {
	var req service.StockLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}
	stock, err := h.svc.SetStockLevels(c.Query("warehouse_id"), c.Query("product_id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, stock)
}

// Recompute rebuilds one projection row from the ledger.
func (h *InventoryHandler) Recompute(c *gin.Context) {
	var req struct {
		WarehouseID string `json:"warehouse_id" binding:"required"`
		ProductID   string `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}
	stock, err := h.svc.RecomputeFromLedger(req.WarehouseID, req.ProductID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, stock)
}

// --- Stock taking ---

func (h *InventoryHandler) CreateStockTaking(c *gin.Context) {
	var req service.StockTakingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}
	taking, err := h.svc.CreateStockTaking(req, actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, taking)
}

func (h *InventoryHandler) GetStockTaking(c *gin.Context) {
	taking, err := h.svc.GetStockTaking(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, taking)
}

func (h *InventoryHandler) ListStockTakings(c *gin.Context) {
	page, size := pagination(c)
	takings, total, err := h.svc.ListStockTakings(c.Query("warehouse_id"), c.Query("status"), page, size)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, paginated(takings, total, page, size))
}

func (h *InventoryHandler) RecordCount(c *gin.Context) {
	var req service.StockCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}
	detail, err := h.svc.RecordCount(c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, detail)
}

func (h *InventoryHandler) CompleteStockTaking(c *gin.Context) {
	taking, err := h.svc.CompleteStockTaking(c.Param("id"), actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, taking)
}

func (h *InventoryHandler) CancelStockTaking(c *gin.Context) {
	taking, err := h.svc.CancelStockTaking(c.Param("id"), actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, taking)
}

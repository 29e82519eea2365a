package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/freshport/freshport/internal/apperr"
	"github.com/freshport/freshport/internal/config"
	"github.com/freshport/freshport/internal/entity"
	"github.com/freshport/freshport/internal/repository"
)

// InventoryService owns the stock ledger. Every quantity change goes
// through a movement append plus a projection update in one
// transaction; the projection is never written on its own.
type InventoryService struct {
	repo          *repository.InventoryRepository
	warehouseRepo *repository.WarehouseRepository
	productRepo   *repository.ProductRepository
	activityRepo  *repository.ActivityLogRepository
	negativeStock string
}

func NewInventoryService(
	repo *repository.InventoryRepository,
	warehouseRepo *repository.WarehouseRepository,
	productRepo *repository.ProductRepository,
	activityRepo *repository.ActivityLogRepository,
	cfg config.InventoryConfig,
) *InventoryService {
	policy := cfg.NegativeStock
	if policy == "" {
		policy = config.NegativeStockClamp
	}
	return &InventoryService{
		repo:          repo,
		warehouseRepo: warehouseRepo,
		productRepo:   productRepo,
		activityRepo:  activityRepo,
		negativeStock: policy,
	}
}

type MovementRequest struct {
	WarehouseID   string          `json:"warehouse_id" binding:"required"`
	ProductID     string          `json:"product_id" binding:"required"`
	MovementType  string          `json:"movement_type" binding:"required"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	ReferenceType string          `json:"reference_type"`
	ReferenceID   string          `json:"reference_id"`
	Notes         string          `json:"notes"`
}

// RecordMovement appends one ledger entry and moves the stock
// projection with it. The movement quantity must be positive; the type
// carries the sign.
func (s *InventoryService) RecordMovement(req MovementRequest, actorID string) (*entity.StockMovement, error) {
	direction, err := entity.MovementDirection(req.MovementType)
	if err != nil {
		return nil, apperr.Validationf("movement_type must be one of %v", entity.MovementTypes)
	}
	if !req.Quantity.IsPositive() {
		return nil, apperr.Validationf("quantity must be greater than zero")
	}
	if _, err := s.warehouseRepo.GetByID(req.WarehouseID); err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFoundf("warehouse %s not found", req.WarehouseID)
		}
		return nil, apperr.Internalf(err, "load warehouse")
	}
	if _, err := s.productRepo.GetByID(req.ProductID); err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFoundf("product %s not found", req.ProductID)
		}
		return nil, apperr.Internalf(err, "load product")
	}

	movement := &entity.StockMovement{
		ID:            uuid.New().String(),
		WarehouseID:   req.WarehouseID,
		ProductID:     req.ProductID,
		MovementType:  req.MovementType,
		Quantity:      req.Quantity,
		UnitCost:      req.UnitCost,
		ReferenceType: req.ReferenceType,
		ReferenceID:   req.ReferenceID,
		Notes:         req.Notes,
		CreatedBy:     actorID,
	}

	err = s.repo.DB().Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := s.applyMovement(txRepo, movement, direction); err != nil {
			return err
		}
		return txRepo.CreateMovement(movement)
	})
	if err != nil {
		return nil, err
	}

	s.activityRepo.Log("stock_movement", movement.ID, "", entity.ActionStockMove,
		"", "", fmt.Sprintf("%s %s of product %s", req.MovementType, req.Quantity, req.ProductID), actorID)

	return s.repo.GetMovement(movement.ID)
}

// applyMovement shifts the locked projection row by the movement's
// signed quantity, creating the row on first touch. Negative results
// are clamped to zero or rejected per the configured policy.
func (s *InventoryService) applyMovement(txRepo *repository.InventoryRepository, m *entity.StockMovement, direction int) error {
	stock, err := txRepo.GetStockForUpdate(m.WarehouseID, m.ProductID)
	if repository.IsNotFound(err) {
		stock = &entity.InventoryStock{
			ID:          uuid.New().String(),
			WarehouseID: m.WarehouseID,
			ProductID:   m.ProductID,
			Quantity:    decimal.Zero,
			LastUpdated: time.Now(),
		}
		if err := txRepo.CreateStock(stock); err != nil {
			return apperr.Internalf(err, "create stock row")
		}
		// Re-lock so concurrent first movements serialize too.
		stock, err = txRepo.GetStockForUpdate(m.WarehouseID, m.ProductID)
		if err != nil {
			return apperr.Internalf(err, "lock stock row")
		}
	} else if err != nil {
		return apperr.Internalf(err, "lock stock row")
	}

	delta := m.Quantity
	if direction < 0 {
		delta = delta.Neg()
	}
	next := stock.Quantity.Add(delta)
	if next.IsNegative() {
		if s.negativeStock == config.NegativeStockReject {
			return apperr.InsufficientStockf(
				"insufficient stock for product %s in warehouse %s: have %s, requested %s",
				m.ProductID, m.WarehouseID, stock.Quantity, m.Quantity)
		}
		next = decimal.Zero
	}
	stock.Quantity = next
	stock.LastUpdated = time.Now()
	if err := txRepo.SaveStock(stock); err != nil {
		return apperr.Internalf(err, "save stock row")
	}
	return nil
}

type MovementBatchItem struct {
	ProductID string          `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Notes     string          `json:"notes"`
}

type MovementBatchRequest struct {
	WarehouseID   string              `json:"warehouse_id" binding:"required"`
	MovementType  string              `json:"movement_type" binding:"required"`
	ReferenceType string              `json:"reference_type"`
	ReferenceID   string              `json:"reference_id"`
	Notes         string              `json:"notes"`
	Items         []MovementBatchItem `json:"items" binding:"required"`
}

type MovementBatchLine struct {
	MovementID  string          `json:"movement_id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	TotalCost   decimal.Decimal `json:"total_cost"`
}

type MovementBatchResult struct {
	WarehouseID   string              `json:"warehouse_id"`
	WarehouseName string              `json:"warehouse_name"`
	MovementType  string              `json:"movement_type"`
	ReferenceType string              `json:"reference_type"`
	ReferenceID   string              `json:"reference_id"`
	TotalItems    int                 `json:"total_items"`
	TotalValue    decimal.Decimal     `json:"total_value"`
	Items         []MovementBatchLine `json:"items"`
}

// RecordMovementBatch appends one movement per item against a single
// warehouse, all-or-nothing. Outbound batches are checked against
// on-hand stock before anything is written; one short line fails the
// whole batch.
func (s *InventoryService) RecordMovementBatch(req MovementBatchRequest, actorID string) (*MovementBatchResult, error) {
	direction, err := entity.MovementDirection(req.MovementType)
	if err != nil {
		return nil, apperr.Validationf("movement_type must be one of %v", entity.MovementTypes)
	}
	if len(req.Items) == 0 {
		return nil, apperr.Validationf("items must not be empty")
	}
	warehouse, err := s.warehouseRepo.GetByID(req.WarehouseID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFoundf("warehouse %s not found", req.WarehouseID)
		}
		return nil, apperr.Internalf(err, "load warehouse")
	}

	result := &MovementBatchResult{
		WarehouseID:   warehouse.ID,
		WarehouseName: warehouse.Name,
		MovementType:  req.MovementType,
		ReferenceType: req.ReferenceType,
		ReferenceID:   req.ReferenceID,
		TotalValue:    decimal.Zero,
	}

	err = s.repo.DB().Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		for i, item := range req.Items {
			if !item.Quantity.IsPositive() {
				return apperr.Validationf("items[%d]: quantity must be greater than zero", i)
			}
			product, err := s.productRepo.WithTx(tx).GetByID(item.ProductID)
			if err != nil {
				if repository.IsNotFound(err) {
					return apperr.NotFoundf("items[%d]: product %s not found", i, item.ProductID)
				}
				return apperr.Internalf(err, "load product")
			}

			if req.MovementType == entity.MovementOutbound {
				stock, err := txRepo.GetStockForUpdate(req.WarehouseID, item.ProductID)
				if repository.IsNotFound(err) {
					return apperr.InsufficientStockf(
						"insufficient stock for product %s: have 0, requested %s",
						product.Name, item.Quantity)
				}
				if err != nil {
					return apperr.Internalf(err, "lock stock row")
				}
				if stock.Quantity.LessThan(item.Quantity) {
					return apperr.InsufficientStockf(
						"insufficient stock for product %s: have %s, requested %s",
						product.Name, stock.Quantity, item.Quantity)
				}
			}

			notes := item.Notes
			if notes == "" {
				notes = req.Notes
			}
			movement := &entity.StockMovement{
				ID:            uuid.New().String(),
				WarehouseID:   req.WarehouseID,
				ProductID:     item.ProductID,
				MovementType:  req.MovementType,
				Quantity:      item.Quantity,
				UnitCost:      item.UnitCost,
				ReferenceType: req.ReferenceType,
				ReferenceID:   req.ReferenceID,
				Notes:         notes,
				CreatedBy:     actorID,
			}
			if err := s.applyMovement(txRepo, movement, direction); err != nil {
				return err
			}
			if err := txRepo.CreateMovement(movement); err != nil {
				return apperr.Internalf(err, "append movement")
			}

			totalCost := item.Quantity.Mul(item.UnitCost)
			result.Items = append(result.Items, MovementBatchLine{
				MovementID:  movement.ID,
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    item.Quantity,
				UnitCost:    item.UnitCost,
				TotalCost:   totalCost,
			})
			result.TotalValue = result.TotalValue.Add(totalCost)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.TotalItems = len(result.Items)
	s.activityRepo.Log("stock_movement", req.ReferenceID, "", entity.ActionStockMove,
		"", "", fmt.Sprintf("batch %s of %d items into warehouse %s", req.MovementType, result.TotalItems, warehouse.Code), actorID)
	return result, nil
}

func (s *InventoryService) GetMovement(id string) (*entity.StockMovement, error) {
	m, err := s.repo.GetMovement(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFoundf("movement %s not found", id)
		}
		return nil, apperr.Internalf(err, "load movement")
	}
	return m, nil
}

func (s *InventoryService) ListMovements(params repository.MovementListParams) ([]entity.StockMovement, int64, error) {
	if params.MovementType != "" {
		if _, err := entity.MovementDirection(params.MovementType); err != nil {
			return nil, 0, apperr.Validationf("movement_type must be one of %v", entity.MovementTypes)
		}
	}
	return s.repo.ListMovements(params)
}

func (s *InventoryService) ListStock(params repository.StockListParams) ([]entity.InventoryStock, int64, error) {
	return s.repo.ListStock(params)
}

func (s *InventoryService) GetStock(warehouseID, productID string) (*entity.InventoryStock, error) {
	stock, err := s.repo.GetStock(warehouseID, productID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFoundf("no stock record for warehouse %s and product %s", warehouseID, productID)
		}
		return nil, apperr.Internalf(err, "load stock")
	}
	return stock, nil
}

type StockLevelRequest struct {
	MinStockLevel decimal.Decimal `json:"min_stock_level"`
	MaxStockLevel decimal.Decimal `json:"max_stock_level"`
}

// SetStockLevels updates the alerting thresholds on a projection row.
// Quantity itself is untouchable here; only movements change it.
func (s *InventoryService) SetStockLevels(warehouseID, productID string, req StockLevelRequest) (*entity.InventoryStock, error) {
	if req.MinStockLevel.IsNegative() || req.MaxStockLevel.IsNegative() {
		return nil, apperr.Validationf("stock levels must not be negative")
	}
	stock, err := s.GetStock(warehouseID, productID)
	if err != nil {
		return nil, err
	}
	stock.MinStockLevel = req.MinStockLevel
	stock.MaxStockLevel = req.MaxStockLevel
	if err := s.repo.SaveStock(stock); err != nil {
		return nil, apperr.Internalf(err, "save stock levels")
	}
	return stock, nil
}

// RecomputeFromLedger rebuilds one projection row from the full
// movement history. It repairs drift; on a healthy row it is a no-op.
func (s *InventoryService) RecomputeFromLedger(warehouseID, productID string) (*entity.InventoryStock, error) {
	if _, err := s.warehouseRepo.GetByID(warehouseID); err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFoundf("warehouse %s not found", warehouseID)
		}
		return nil, apperr.Internalf(err, "load warehouse")
	}
	if _, err := s.productRepo.GetByID(productID); err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFoundf("product %s not found", productID)
		}
		return nil, apperr.Internalf(err, "load product")
	}

	var stock *entity.InventoryStock
	err := s.repo.DB().Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		sum, err := txRepo.SumMovements(warehouseID, productID)
		if err != nil {
			return apperr.Internalf(err, "sum ledger")
		}
		if sum.IsNegative() {
			sum = decimal.Zero
		}
		stock, err = txRepo.GetStockForUpdate(warehouseID, productID)
		if repository.IsNotFound(err) {
			stock = &entity.InventoryStock{
				ID:          uuid.New().String(),
				WarehouseID: warehouseID,
				ProductID:   productID,
				Quantity:    sum,
				LastUpdated: time.Now(),
			}
			return txRepo.CreateStock(stock)
		}
		if err != nil {
			return apperr.Internalf(err, "lock stock row")
		}
		stock.Quantity = sum
		stock.LastUpdated = time.Now()
		return txRepo.SaveStock(stock)
	})
	if err != nil {
		return nil, err
	}
	return stock, nil
}

// --- Stock taking ---

type StockTakingRequest struct {
	WarehouseID string `json:"warehouse_id" binding:"required"`
	Notes       string `json:"notes"`
}

func (s *InventoryService) CreateStockTaking(req StockTakingRequest, actorID string) (*entity.StockTaking, error) {
	if _, err := s.warehouseRepo.GetByID(req.WarehouseID); err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFoundf("warehouse %s not found", req.WarehouseID)
		}
		return nil, apperr.Internalf(err, "load warehouse")
	}
	last, err := s.repo.LastStockTakingCode()
	if err != nil {
		return nil, apperr.Internalf(err, "scan stock taking codes")
	}
	taking := &entity.StockTaking{
		ID:          uuid.New().String(),
		Code:        nextCode("ST", last),
		WarehouseID: req.WarehouseID,
		Status:      entity.StockTakingDraft,
		StartDate:   time.Now(),
		Notes:       req.Notes,
		CreatedBy:   actorID,
	}
	if err := s.repo.CreateStockTaking(taking); err != nil {
		if isDuplicate(err) {
			taking.Code = fallbackCode("ST")
			err = s.repo.CreateStockTaking(taking)
		}
		if err != nil {
			return nil, apperr.Internalf(err, "create stock taking")
		}
	}
	return taking, nil
}

type StockCountRequest struct {
	ProductID      string          `json:"product_id" binding:"required"`
	ActualQuantity decimal.Decimal `json:"actual_quantity"`
	Notes          string          `json:"notes"`
}

// RecordCount stores one counted product in an open session. The system
// quantity is snapshotted from the projection at count time.
func (s *InventoryService) RecordCount(takingID string, req StockCountRequest) (*entity.StockTakingDetail, error) {
	if req.ActualQuantity.IsNegative() {
		return nil, apperr.Validationf("actual_quantity must not be negative")
	}
	taking, err := s.repo.GetStockTaking(takingID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFoundf("stock taking %s not found", takingID)
		}
		return nil, apperr.Internalf(err, "load stock taking")
	}
	if taking.Status == entity.StockTakingCompleted || taking.Status == entity.StockTakingCancelled {
		return nil, apperr.InvalidTransitionf("stock taking %s is %s", taking.Code, taking.Status)
	}
	if _, err := s.productRepo.GetByID(req.ProductID); err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFoundf("product %s not found", req.ProductID)
		}
		return nil, apperr.Internalf(err, "load product")
	}

	systemQty := decimal.Zero
	if stock, err := s.repo.GetStock(taking.WarehouseID, req.ProductID); err == nil {
		systemQty = stock.Quantity
	} else if !repository.IsNotFound(err) {
		return nil, apperr.Internalf(err, "load stock")
	}

	detail := &entity.StockTakingDetail{
		ID:             uuid.New().String(),
		StockTakingID:  taking.ID,
		ProductID:      req.ProductID,
		SystemQuantity: systemQty,
		ActualQuantity: req.ActualQuantity,
		Notes:          req.Notes,
	}
	detail.ComputeVariance()

	if err := s.repo.CreateStockTakingDetail(detail); err != nil {
		if isDuplicate(err) {
			return nil, apperr.Duplicatef("product %s already counted in stock taking %s", req.ProductID, taking.Code)
		}
		return nil, apperr.Internalf(err, "save count")
	}

	if taking.Status == entity.StockTakingDraft {
		taking.Status = entity.StockTakingInProgress
		taking.Warehouse = nil
		taking.Details = nil
		if err := s.repo.SaveStockTaking(taking); err != nil {
			return nil, apperr.Internalf(err, "update stock taking status")
		}
	}
	return detail, nil
}

// CompleteStockTaking closes the session and reconciles every non-zero
// variance through the ledger: surplus becomes an adjustment movement,
// shortage an outbound movement, both referencing the session. The
// projection ends up equal to the counted quantities.
func (s *InventoryService) CompleteStockTaking(id, actorID string) (*entity.StockTaking, error) {
	taking, err := s.repo.GetStockTaking(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFoundf("stock taking %s not found", id)
		}
		return nil, apperr.Internalf(err, "load stock taking")
	}
	if taking.Status != entity.StockTakingInProgress {
		return nil, apperr.InvalidTransitionf("stock taking %s is %s, expected %s",
			taking.Code, taking.Status, entity.StockTakingInProgress)
	}

	err = s.repo.DB().Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		for _, detail := range taking.Details {
			if detail.Variance.IsZero() {
				continue
			}
			movementType := entity.MovementAdjustment
			quantity := detail.Variance
			if detail.Variance.IsNegative() {
				movementType = entity.MovementOutbound
				quantity = detail.Variance.Neg()
			}
			direction, _ := entity.MovementDirection(movementType)
			movement := &entity.StockMovement{
				ID:            uuid.New().String(),
				WarehouseID:   taking.WarehouseID,
				ProductID:     detail.ProductID,
				MovementType:  movementType,
				Quantity:      quantity,
				ReferenceType: "stock_taking",
				ReferenceID:   taking.ID,
				Notes:         fmt.Sprintf("count variance from %s", taking.Code),
				CreatedBy:     actorID,
			}
			if err := s.applyMovement(txRepo, movement, direction); err != nil {
				return err
			}
			if err := txRepo.CreateMovement(movement); err != nil {
				return apperr.Internalf(err, "append variance movement")
			}
		}
		now := time.Now()
		taking.Status = entity.StockTakingCompleted
		taking.EndDate = &now
		taking.Warehouse = nil
		taking.Details = nil
		return txRepo.SaveStockTaking(taking)
	})
	if err != nil {
		return nil, err
	}

	s.activityRepo.Log("stock_taking", taking.ID, taking.Code, entity.ActionStatusChange,
		entity.StockTakingInProgress, entity.StockTakingCompleted, "stock taking completed", actorID)
	return taking, nil
}

func (s *InventoryService) CancelStockTaking(id, actorID string) (*entity.StockTaking, error) {
	taking, err := s.repo.GetStockTaking(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFoundf("stock taking %s not found", id)
		}
		return nil, apperr.Internalf(err, "load stock taking")
	}
	if taking.Status == entity.StockTakingCompleted || taking.Status == entity.StockTakingCancelled {
		return nil, apperr.InvalidTransitionf("stock taking %s is already %s", taking.Code, taking.Status)
	}
	from := taking.Status
	now := time.Now()
	taking.Status = entity.StockTakingCancelled
	taking.EndDate = &now
	taking.Warehouse = nil
	taking.Details = nil
	if err := s.repo.SaveStockTaking(taking); err != nil {
		return nil, apperr.Internalf(err, "save stock taking")
	}
	s.activityRepo.Log("stock_taking", taking.ID, taking.Code, entity.ActionStatusChange,
		from, entity.StockTakingCancelled, "stock taking cancelled", actorID)
	return taking, nil
}

func (s *InventoryService) GetStockTaking(id string) (*entity.StockTaking, error) {
	taking, err := s.repo.GetStockTaking(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFoundf("stock taking %s not found", id)
		}
		return nil, apperr.Internalf(err, "load stock taking")
	}
	return taking, nil
}

func (s *InventoryService) ListStockTakings(warehouseID, status string, page, size int) ([]entity.StockTaking, int64, error) {
	return s.repo.ListStockTakings(warehouseID, status, page, size)
}

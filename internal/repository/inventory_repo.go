package repository

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/freshport/freshport/internal/entity"
)

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// WithTx binds the repository to a running transaction.
func (r *InventoryRepository) WithTx(tx *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: tx}
}

// DB exposes the handle so services can open transactions.
func (r *InventoryRepository) DB() *gorm.DB {
	return r.db
}

// GetStock fetches the projection row for one (warehouse, product) pair.
func (r *InventoryRepository) GetStock(warehouseID, productID string) (*entity.InventoryStock, error) {
	var stock entity.InventoryStock
	err := r.db.Where("warehouse_id = ? AND product_id = ?", warehouseID, productID).
		First(&stock).Error
	if err != nil {
		return nil, err
	}
	return &stock, nil
}

// GetStockForUpdate row-locks the projection so concurrent movements on
// the same pair serialize. Returns gorm.ErrRecordNotFound when the pair
// has never moved.
func (r *InventoryRepository) GetStockForUpdate(warehouseID, productID string) (*entity.InventoryStock, error) {
	var stock entity.InventoryStock
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("warehouse_id = ? AND product_id = ?", warehouseID, productID).
		First(&stock).Error
	if err != nil {
		return nil, err
	}
	return &stock, nil
}

// IsNotFound reports whether err is the record-not-found sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func (r *InventoryRepository) CreateStock(stock *entity.InventoryStock) error {
	return r.db.Create(stock).Error
}

func (r *InventoryRepository) SaveStock(stock *entity.InventoryStock) error {
	return r.db.Save(stock).Error
}

// CreateMovement appends one ledger entry. The ledger is append-only;
// no update or delete method exists on purpose.
func (r *InventoryRepository) CreateMovement(m *entity.StockMovement) error {
	return r.db.Create(m).Error
}

func (r *InventoryRepository) GetMovement(id string) (*entity.StockMovement, error) {
	var m entity.StockMovement
	err := r.db.Preload("Warehouse").Preload("Product").
		Where("id = ?", id).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

type MovementListParams struct {
	MovementType string
	WarehouseID  string
	ProductID    string
	Page         int
	Size         int
}

func (r *InventoryRepository) ListMovements(params MovementListParams) ([]entity.StockMovement, int64, error) {
	query := r.db.Model(&entity.StockMovement{})
	if params.MovementType != "" {
		query = query.Where("movement_type = ?", params.MovementType)
	}
	if params.WarehouseID != "" {
		query = query.Where("warehouse_id = ?", params.WarehouseID)
	}
	if params.ProductID != "" {
		query = query.Where("product_id = ?", params.ProductID)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var movements []entity.StockMovement
	err := query.Preload("Warehouse").Preload("Product").
		Order("created_at DESC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).
		Find(&movements).Error
	return movements, total, err
}

// SumMovements computes the signed ledger sum for one pair: inbound and
// adjustment add, everything else subtracts.
func (r *InventoryRepository) SumMovements(warehouseID, productID string) (decimal.Decimal, error) {
	var result struct{ Total decimal.Decimal }
	err := r.db.Raw(`
		SELECT COALESCE(SUM(CASE
			WHEN movement_type IN ('inbound', 'adjustment') THEN quantity
			ELSE -quantity
		END), 0) AS total
		FROM stock_movements
		WHERE warehouse_id = ? AND product_id = ?
	`, warehouseID, productID).Scan(&result).Error
	return result.Total, err
}

type StockListParams struct {
	WarehouseID  string
	ProductID    string
	LowStockOnly bool
	Page         int
	Size         int
}

func (r *InventoryRepository) ListStock(params StockListParams) ([]entity.InventoryStock, int64, error) {
	query := r.db.Model(&entity.InventoryStock{})
	if params.WarehouseID != "" {
		query = query.Where("warehouse_id = ?", params.WarehouseID)
	}
	if params.ProductID != "" {
		query = query.Where("product_id = ?", params.ProductID)
	}
	if params.LowStockOnly {
		query = query.Where("quantity <= min_stock_level")
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var stocks []entity.InventoryStock
	err := query.Preload("Warehouse").Preload("Product").
		Order("last_updated DESC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).
		Find(&stocks).Error
	return stocks, total, err
}

// --- Stock taking ---

func (r *InventoryRepository) CreateStockTaking(st *entity.StockTaking) error {
	return r.db.Create(st).Error
}

func (r *InventoryRepository) GetStockTaking(id string) (*entity.StockTaking, error) {
	var st entity.StockTaking
	err := r.db.Preload("Warehouse").Preload("Details").Preload("Details.Product").
		Where("id = ?", id).First(&st).Error
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *InventoryRepository) SaveStockTaking(st *entity.StockTaking) error {
	return r.db.Save(st).Error
}

func (r *InventoryRepository) CreateStockTakingDetail(d *entity.StockTakingDetail) error {
	return r.db.Create(d).Error
}

func (r *InventoryRepository) SaveStockTakingDetail(d *entity.StockTakingDetail) error {
	return r.db.Save(d).Error
}

func (r *InventoryRepository) ListStockTakings(warehouseID, status string, page, size int) ([]entity.StockTaking, int64, error) {
	query := r.db.Model(&entity.StockTaking{})
	if warehouseID != "" {
		query = query.Where("warehouse_id = ?", warehouseID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	var takings []entity.StockTaking
	err := query.Preload("Warehouse").Order("created_at DESC").
		Offset((page - 1) * size).Limit(size).Find(&takings).Error
	return takings, total, err
}

// LastStockTakingCode returns the highest sequential code for suffix
// scanning. Random-suffix fallback codes are excluded.
func (r *InventoryRepository) LastStockTakingCode() (string, error) {
	var st entity.StockTaking
	err := r.db.Where("code ~ '^ST-[0-9]{6,}$'").
		Order("length(code) DESC, code DESC").Limit(1).First(&st).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	return st.Code, err
}

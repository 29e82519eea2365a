package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Movement types. The quantity on a movement is always positive; the
// type decides whether it adds to or subtracts from stock.
const (
	MovementInbound    = "inbound"
	MovementOutbound   = "outbound"
	MovementTransfer   = "transfer"
	MovementAdjustment = "adjustment"
	MovementDamaged    = "damaged"
	MovementExpired    = "expired"
)

// MovementTypes is the allowed set, in display order.
var MovementTypes = []string{
	MovementInbound,
	MovementOutbound,
	MovementTransfer,
	MovementAdjustment,
	MovementDamaged,
	MovementExpired,
}

// MovementDirection returns +1 for types that add stock and -1 for
// types that remove it.
func MovementDirection(movementType string) (int, error) {
	switch movementType {
	case MovementInbound, MovementAdjustment:
		return 1, nil
	case MovementOutbound, MovementTransfer, MovementDamaged, MovementExpired:
		return -1, nil
	default:
		return 0, fmt.Errorf("unknown movement type %q", movementType)
	}
}

// InventoryStock is the materialized quantity for one (warehouse,
// product) pair. It is a projection of the movement ledger: mutated
// only inside the same transaction that appends a movement, or by
// RecomputeFromLedger.
type InventoryStock struct {
	ID               string          `json:"id" gorm:"primaryKey;type:uuid"`
	WarehouseID      string          `json:"warehouse_id" gorm:"type:uuid;not null;uniqueIndex:idx_stock_wh_product"`
	ProductID        string          `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_stock_wh_product"`
	Quantity         decimal.Decimal `json:"quantity" gorm:"type:numeric(10,2);not null;default:0"`
	ReservedQuantity decimal.Decimal `json:"reserved_quantity" gorm:"type:numeric(10,2);not null;default:0"`
	MinStockLevel    decimal.Decimal `json:"min_stock_level" gorm:"type:numeric(10,2);not null;default:0"`
	MaxStockLevel    decimal.Decimal `json:"max_stock_level" gorm:"type:numeric(10,2);not null;default:0"`
	LastUpdated      time.Time       `json:"last_updated"`

	Warehouse *Warehouse `json:"warehouse,omitempty" gorm:"foreignKey:WarehouseID"`
	Product   *Product   `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

func (InventoryStock) TableName() string {
	return "inventory_stocks"
}

// AvailableQuantity is what can still be promised to orders.
func (s *InventoryStock) AvailableQuantity() decimal.Decimal {
	return s.Quantity.Sub(s.ReservedQuantity)
}

// IsLowStock reports whether quantity has fallen to the minimum level.
func (s *InventoryStock) IsLowStock() bool {
	return s.Quantity.LessThanOrEqual(s.MinStockLevel)
}

// StockMovement is one append-only ledger entry. There is no update or
// delete path; corrections are new adjustment movements.
type StockMovement struct {
	ID            string          `json:"id" gorm:"primaryKey;type:uuid"`
	WarehouseID   string          `json:"warehouse_id" gorm:"type:uuid;not null;index"`
	ProductID     string          `json:"product_id" gorm:"type:uuid;not null;index"`
	MovementType  string          `json:"movement_type" gorm:"size:20;not null"`
	Quantity      decimal.Decimal `json:"quantity" gorm:"type:numeric(10,2);not null"`
	UnitCost      decimal.Decimal `json:"unit_cost" gorm:"type:numeric(12,2);default:0"`
	ReferenceType string          `json:"reference_type" gorm:"size:50"`
	ReferenceID   string          `json:"reference_id" gorm:"size:64"`
	Notes         string          `json:"notes" gorm:"type:text"`
	CreatedBy     string          `json:"created_by" gorm:"size:64"`
	CreatedAt     time.Time       `json:"created_at"`

	Warehouse *Warehouse `json:"warehouse,omitempty" gorm:"foreignKey:WarehouseID"`
	Product   *Product   `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

func (StockMovement) TableName() string {
	return "stock_movements"
}

// Stock taking session status
const (
	StockTakingDraft      = "draft"
	StockTakingInProgress = "in_progress"
	StockTakingCompleted  = "completed"
	StockTakingCancelled  = "cancelled"
)

// StockTaking is a physical count session for one warehouse. Completing
// it turns each non-zero variance into an adjustment movement.
type StockTaking struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid"`
	Code        string     `json:"code" gorm:"size:20;not null;uniqueIndex"`
	WarehouseID string     `json:"warehouse_id" gorm:"type:uuid;not null;index"`
	Status      string     `json:"status" gorm:"size:20;not null;default:draft"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Notes       string     `json:"notes" gorm:"type:text"`
	CreatedBy   string     `json:"created_by" gorm:"size:64"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Warehouse *Warehouse          `json:"warehouse,omitempty" gorm:"foreignKey:WarehouseID"`
	Details   []StockTakingDetail `json:"details,omitempty" gorm:"foreignKey:StockTakingID"`
}

func (StockTaking) TableName() string {
	return "stock_takings"
}

// StockTakingDetail is one counted product. Variance is derived:
// actual - system.
type StockTakingDetail struct {
	ID             string          `json:"id" gorm:"primaryKey;type:uuid"`
	StockTakingID  string          `json:"stock_taking_id" gorm:"type:uuid;not null;uniqueIndex:idx_taking_product"`
	ProductID      string          `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_taking_product"`
	SystemQuantity decimal.Decimal `json:"system_quantity" gorm:"type:numeric(10,2);not null;default:0"`
	ActualQuantity decimal.Decimal `json:"actual_quantity" gorm:"type:numeric(10,2);not null;default:0"`
	Variance       decimal.Decimal `json:"variance" gorm:"type:numeric(10,2);not null;default:0"`
	Notes          string          `json:"notes" gorm:"type:text"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

func (StockTakingDetail) TableName() string {
	return "stock_taking_details"
}

// ComputeVariance refreshes the derived variance field.
func (d *StockTakingDetail) ComputeVariance() {
	d.Variance = d.ActualQuantity.Sub(d.SystemQuantity)
}

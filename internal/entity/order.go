package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order types. Purchase orders buy from farmers, sale orders sell to
// customers; the type also picks the order number prefix.
const (
	OrderTypePurchase = "purchase"
	OrderTypeSale     = "sale"
)

// OrderNumberPrefix returns the human-readable prefix for a type.
func OrderNumberPrefix(orderType string) string {
	switch orderType {
	case OrderTypePurchase:
		return "PO"
	case OrderTypeSale:
		return "SO"
	default:
		return "OR"
	}
}

// Order status. The forward chain below is strict; cancelled and
// returned are reachable from any non-terminal state.
const (
	OrderDraft      = "draft"
	OrderConfirmed  = "confirmed"
	OrderProcessing = "processing"
	OrderPicking    = "picking"
	OrderPacked     = "packed"
	OrderShipped    = "shipped"
	OrderInTransit  = "in_transit"
	OrderDelivered  = "delivered"
	OrderCompleted  = "completed"
	OrderCancelled  = "cancelled"
	OrderReturned   = "returned"
)

// orderStatusRank orders the forward chain. Escape states carry no rank.
var orderStatusRank = map[string]int{
	OrderDraft:      0,
	OrderConfirmed:  1,
	OrderProcessing: 2,
	OrderPicking:    3,
	OrderPacked:     4,
	OrderShipped:    5,
	OrderInTransit:  6,
	OrderDelivered:  7,
	OrderCompleted:  8,
}

// IsTerminalOrderStatus reports whether no further transition is allowed.
func IsTerminalOrderStatus(status string) bool {
	return status == OrderCompleted || status == OrderCancelled || status == OrderReturned
}

// CanTransitionOrderStatus validates a status change: strictly forward
// along the chain (any number of steps), or into cancelled/returned from
// any non-terminal state.
func CanTransitionOrderStatus(from, to string) bool {
	if from == to {
		return false
	}
	if IsTerminalOrderStatus(from) {
		return false
	}
	if to == OrderCancelled || to == OrderReturned {
		return true
	}
	fromRank, ok := orderStatusRank[from]
	if !ok {
		return false
	}
	toRank, ok := orderStatusRank[to]
	if !ok {
		return false
	}
	return toRank > fromRank
}

// Payment status
const (
	PaymentPending  = "pending"
	PaymentPartial  = "partial"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

// Order priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Order is a purchase or sale. Exactly one of FarmerID/CustomerID is
// set, decided by OrderType. The money fields are derived from the
// details plus the discount and rewritten whenever details change.
type Order struct {
	ID          string `json:"id" gorm:"primaryKey;type:uuid"`
	OrderNumber string `json:"order_number" gorm:"size:50;not null;uniqueIndex"`
	OrderType   string `json:"order_type" gorm:"size:20;not null"`

	FarmerID   *string `json:"farmer_id,omitempty" gorm:"type:uuid;index"`
	CustomerID *string `json:"customer_id,omitempty" gorm:"type:uuid;index"`

	Status        string `json:"status" gorm:"size:20;not null;default:draft"`
	PaymentStatus string `json:"payment_status" gorm:"size:20;not null;default:pending"`
	Priority      string `json:"priority" gorm:"size:10;not null;default:medium"`

	OrderDate        time.Time  `json:"order_date"`
	DeliveryDate     *time.Time `json:"delivery_date,omitempty"`
	ExpectedDelivery *time.Time `json:"expected_delivery,omitempty"`

	ShippingAddress string `json:"shipping_address" gorm:"type:text"`
	ShippingContact string `json:"shipping_contact" gorm:"size:100"`
	ShippingPhone   string `json:"shipping_phone" gorm:"size:15"`

	Subtotal       decimal.Decimal `json:"subtotal" gorm:"type:numeric(15,2);not null;default:0"`
	TaxAmount      decimal.Decimal `json:"tax_amount" gorm:"type:numeric(15,2);not null;default:0"`
	ShippingCost   decimal.Decimal `json:"shipping_cost" gorm:"type:numeric(15,2);not null;default:0"`
	DiscountAmount decimal.Decimal `json:"discount_amount" gorm:"type:numeric(15,2);not null;default:0"`
	TotalAmount    decimal.Decimal `json:"total_amount" gorm:"type:numeric(15,2);not null;default:0"`

	TrackingNumber  string          `json:"tracking_number" gorm:"size:100"`
	EstimatedWeight decimal.Decimal `json:"estimated_weight" gorm:"type:numeric(10,2);default:0"` // kg
	ActualWeight    decimal.Decimal `json:"actual_weight" gorm:"type:numeric(10,2);default:0"`    // kg

	Notes         string `json:"notes" gorm:"type:text"`
	InternalNotes string `json:"internal_notes" gorm:"type:text"`

	CreatedBy string         `json:"created_by" gorm:"size:64"`
	UpdatedBy string         `json:"updated_by" gorm:"size:64"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Farmer   *Farmer       `json:"farmer,omitempty" gorm:"foreignKey:FarmerID"`
	Customer *Customer     `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Details  []OrderDetail `json:"details,omitempty" gorm:"foreignKey:OrderID"`
}

func (Order) TableName() string {
	return "orders"
}

// PartnerName returns the counterparty name for display.
func (o *Order) PartnerName() string {
	if o.Farmer != nil {
		return o.Farmer.Name
	}
	if o.Customer != nil {
		return o.Customer.Name
	}
	return ""
}

// OrderDetail is one line item, unique per (order, product).
// TotalPrice carries no independent truth: it is always
// quantity * unit_price.
type OrderDetail struct {
	ID           string          `json:"id" gorm:"primaryKey;type:uuid"`
	OrderID      string          `json:"order_id" gorm:"type:uuid;not null;uniqueIndex:idx_order_product"`
	ProductID    string          `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_order_product"`
	Quantity     decimal.Decimal `json:"quantity" gorm:"type:numeric(10,2);not null"`
	UnitPrice    decimal.Decimal `json:"unit_price" gorm:"type:numeric(12,2);not null"`
	TotalPrice   decimal.Decimal `json:"total_price" gorm:"type:numeric(15,2);not null;default:0"`
	TaxRate      decimal.Decimal `json:"tax_rate" gorm:"type:numeric(5,2);default:0"`
	DiscountRate decimal.Decimal `json:"discount_rate" gorm:"type:numeric(5,2);default:0"`
	Notes        string          `json:"notes" gorm:"type:text"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

func (OrderDetail) TableName() string {
	return "order_details"
}

// ComputeTotal refreshes the derived line total.
func (d *OrderDetail) ComputeTotal() {
	d.TotalPrice = d.Quantity.Mul(d.UnitPrice)
}

// OrderStatusHistory records every status change.
type OrderStatusHistory struct {
	ID         string    `json:"id" gorm:"primaryKey;type:uuid"`
	OrderID    string    `json:"order_id" gorm:"type:uuid;not null;index"`
	FromStatus string    `json:"from_status" gorm:"size:20"`
	ToStatus   string    `json:"to_status" gorm:"size:20;not null"`
	Notes      string    `json:"notes" gorm:"type:text"`
	ChangedBy  string    `json:"changed_by" gorm:"size:64"`
	ChangedAt  time.Time `json:"changed_at"`
}

func (OrderStatusHistory) TableName() string {
	return "order_status_history"
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment methods
const (
	PayMethodCash     = "cash"
	PayMethodTransfer = "bank_transfer"
	PayMethodLC       = "letter_of_credit"
	PayMethodOther    = "other"
)

// Payment directions
const (
	PayDirectionIn  = "incoming" // customer pays us
	PayDirectionOut = "outgoing" // we pay a farmer
)

// Payment is money moved against an order. Recording one rolls the
// order's payment_status forward.
type Payment struct {
	ID          string          `json:"id" gorm:"primaryKey;type:uuid"`
	PaymentCode string          `json:"payment_code" gorm:"size:50;not null;uniqueIndex"`
	OrderID     string          `json:"order_id" gorm:"type:uuid;not null;index"`
	Direction   string          `json:"direction" gorm:"size:20;not null"`
	Method      string          `json:"method" gorm:"size:20;not null;default:bank_transfer"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:numeric(15,2);not null"`
	Currency    string          `json:"currency" gorm:"size:10;not null;default:VND"`
	PaidAt      time.Time       `json:"paid_at"`
	Reference   string          `json:"reference" gorm:"size:100"`
	Notes       string          `json:"notes" gorm:"type:text"`
	CreatedBy   string          `json:"created_by" gorm:"size:64"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Order *Order `json:"order,omitempty" gorm:"foreignKey:OrderID"`
}

func (Payment) TableName() string {
	return "payments"
}

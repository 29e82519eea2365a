package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Warehouse is a physical storage site. Deactivated rather than deleted
// once stock movements reference it.
type Warehouse struct {
	ID        string          `json:"id" gorm:"primaryKey;type:uuid"`
	Code      string          `json:"code" gorm:"size:20;not null;uniqueIndex"`
	Name      string          `json:"name" gorm:"size:100;not null"`
	Address   string          `json:"address" gorm:"size:500"`
	Manager   string          `json:"manager" gorm:"size:64"`
	Capacity  decimal.Decimal `json:"capacity" gorm:"type:numeric(10,2);default:0"` // tons
	IsActive  bool            `json:"is_active" gorm:"not null;default:true"`
	Notes     string          `json:"notes" gorm:"type:text"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `json:"-" gorm:"index"`
}

func (Warehouse) TableName() string {
	return "warehouses"
}

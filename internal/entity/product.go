package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product origin
const (
	OriginDomestic = "domestic"
	OriginImported = "imported"
)

const (
	GradeExport   = "A"
	GradePremium  = "B"
	GradeStandard = "C"
)

// Category groups products (citrus, tropical, berries, ...).
type Category struct {
	ID          string         `json:"id" gorm:"primaryKey;type:uuid"`
	Name        string         `json:"name" gorm:"size:100;not null;uniqueIndex"`
	Description string         `json:"description" gorm:"type:text"`
	IsActive    bool           `json:"is_active" gorm:"not null;default:true"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Category) TableName() string {
	return "product_categories"
}

// Unit is a unit of measure (kg, box, pallet).
type Unit struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid"`
	Name        string    `json:"name" gorm:"size:50;not null;uniqueIndex"`
	Symbol      string    `json:"symbol" gorm:"size:10;not null"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Unit) TableName() string {
	return "product_units"
}

// Product is one catalog entry. Prices are per unit; SellingPrice is the
// default unit price on sale order lines.
type Product struct {
	ID            string          `json:"id" gorm:"primaryKey;type:uuid"`
	Code          string          `json:"code" gorm:"size:20;not null;uniqueIndex"`
	Name          string          `json:"name" gorm:"size:200;not null"`
	CategoryID    string          `json:"category_id" gorm:"type:uuid;index"`
	UnitID        string          `json:"unit_id" gorm:"type:uuid"`
	Description   string          `json:"description" gorm:"type:text"`
	Origin        string          `json:"origin" gorm:"size:20;not null;default:domestic"`
	OriginCountry string          `json:"origin_country" gorm:"size:100"`
	QualityGrade  string          `json:"quality_grade" gorm:"size:5"`
	CostPrice     decimal.Decimal `json:"cost_price" gorm:"type:numeric(12,2);not null;default:0"`
	SellingPrice  decimal.Decimal `json:"selling_price" gorm:"type:numeric(12,2);not null;default:0"`
	ExportPrice   decimal.Decimal `json:"export_price" gorm:"type:numeric(12,2);default:0"`
	ShelfLifeDays int             `json:"shelf_life_days" gorm:"default:0"`
	HSCode        string          `json:"hs_code" gorm:"size:20"`
	IsActive      bool            `json:"is_active" gorm:"not null;default:true"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `json:"-" gorm:"index"`

	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Unit     *Unit     `json:"unit,omitempty" gorm:"foreignKey:UnitID"`
}

func (Product) TableName() string {
	return "products"
}

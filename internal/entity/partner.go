package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Farmer types
const (
	FarmerIndividual  = "individual"
	FarmerCooperative = "cooperative"
	FarmerEnterprise  = "enterprise"
)

// Farmer is a supplier of fruit. FarmerCode is generated once on
// creation and never changes.
type Farmer struct {
	ID         string `json:"id" gorm:"primaryKey;type:uuid"`
	FarmerCode string `json:"farmer_code" gorm:"size:20;not null;uniqueIndex"`
	Name       string `json:"name" gorm:"size:200;not null"`
	FarmerType string `json:"farmer_type" gorm:"size:20;not null;default:individual"`

	Phone   string `json:"phone" gorm:"size:17"`
	Email   string `json:"email" gorm:"size:100"`
	Address string `json:"address" gorm:"type:text"`

	FarmingRegion       string          `json:"farming_region" gorm:"size:200"`
	TotalFarmArea       decimal.Decimal `json:"total_farm_area" gorm:"type:numeric(10,2);default:0"` // ha
	MainCrops           string          `json:"main_crops" gorm:"type:text"`
	Certifications      string          `json:"certifications" gorm:"size:20;default:none"`
	CertificationExpiry *time.Time      `json:"certification_expiry,omitempty"`

	BankName    string `json:"bank_name" gorm:"size:100"`
	BankAccount string `json:"bank_account" gorm:"size:50"`
	TaxCode     string `json:"tax_code" gorm:"size:20;uniqueIndex:,where:tax_code <> ''"`

	Rating     decimal.Decimal `json:"rating" gorm:"type:numeric(3,2);default:0"`
	IsVerified bool            `json:"is_verified" gorm:"not null;default:false"`
	IsActive   bool            `json:"is_active" gorm:"not null;default:true"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Farmer) TableName() string {
	return "farmers"
}

// Customer types
const (
	CustomerRetail      = "retail"
	CustomerWholesale   = "wholesale"
	CustomerDistributor = "distributor"
	CustomerExport      = "export"
)

// Customer is a buyer. CustomerCode is generated once on creation.
type Customer struct {
	ID           string `json:"id" gorm:"primaryKey;type:uuid"`
	CustomerCode string `json:"customer_code" gorm:"size:20;not null;uniqueIndex"`
	Name         string `json:"name" gorm:"size:200;not null"`
	CustomerType string `json:"customer_type" gorm:"size:20;not null;default:retail"`

	ContactName string `json:"contact_name" gorm:"size:100"`
	Phone       string `json:"phone" gorm:"size:17"`
	Email       string `json:"email" gorm:"size:100"`
	Address     string `json:"address" gorm:"type:text"`

	TaxCode      string          `json:"tax_code" gorm:"size:20;uniqueIndex:,where:tax_code <> ''"`
	CreditLimit  decimal.Decimal `json:"credit_limit" gorm:"type:numeric(15,2);default:0"`
	PaymentTerms string          `json:"payment_terms" gorm:"size:100"`

	IsActive  bool           `json:"is_active" gorm:"not null;default:true"`
	Notes     string         `json:"notes" gorm:"type:text"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Customer) TableName() string {
	return "customers"
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customs declaration status
const (
	DeclarationDraft     = "draft"
	DeclarationSubmitted = "submitted"
	DeclarationCleared   = "cleared"
	DeclarationRejected  = "rejected"
)

// CustomsDeclaration is the customs paperwork for an import/export
// order. TotalTax is derived: duty + VAT + other fees.
type CustomsDeclaration struct {
	ID                string          `json:"id" gorm:"primaryKey;type:uuid"`
	DeclarationNumber string          `json:"declaration_number" gorm:"size:50;not null;uniqueIndex"`
	OrderID           string          `json:"order_id" gorm:"type:uuid;not null;index"`
	Status            string          `json:"status" gorm:"size:20;not null;default:draft"`
	CustomsOffice     string          `json:"customs_office" gorm:"size:200"`
	DeclaredValue     decimal.Decimal `json:"declared_value" gorm:"type:numeric(15,2);not null;default:0"`
	CustomsDuty       decimal.Decimal `json:"customs_duty" gorm:"type:numeric(15,2);not null;default:0"`
	VATAmount         decimal.Decimal `json:"vat_amount" gorm:"type:numeric(15,2);not null;default:0"`
	OtherFees         decimal.Decimal `json:"other_fees" gorm:"type:numeric(15,2);not null;default:0"`
	TotalTax          decimal.Decimal `json:"total_tax" gorm:"type:numeric(15,2);not null;default:0"`
	DeclaredAt        *time.Time      `json:"declared_at,omitempty"`
	ClearedAt         *time.Time      `json:"cleared_at,omitempty"`
	Notes             string          `json:"notes" gorm:"type:text"`
	CreatedBy         string          `json:"created_by" gorm:"size:64"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`

	Order *Order `json:"order,omitempty" gorm:"foreignKey:OrderID"`
}

func (CustomsDeclaration) TableName() string {
	return "customs_declarations"
}

// ComputeTotalTax refreshes the derived tax total.
func (d *CustomsDeclaration) ComputeTotalTax() {
	d.TotalTax = d.CustomsDuty.Add(d.VATAmount).Add(d.OtherFees)
}

// Shipping document types
const (
	ShipDocBillOfLading  = "bill_of_lading"
	ShipDocPackingList   = "packing_list"
	ShipDocCertOrigin    = "certificate_of_origin"
	ShipDocPhytosanitary = "phytosanitary"
	ShipDocInvoice       = "commercial_invoice"
)

// ShippingDocument is one transport/inspection paper attached to an
// order.
type ShippingDocument struct {
	ID             string     `json:"id" gorm:"primaryKey;type:uuid"`
	OrderID        string     `json:"order_id" gorm:"type:uuid;not null;index"`
	DocumentType   string     `json:"document_type" gorm:"size:30;not null"`
	DocumentNumber string     `json:"document_number" gorm:"size:100;not null"`
	IssuedBy       string     `json:"issued_by" gorm:"size:200"`
	IssuedAt       *time.Time `json:"issued_at,omitempty"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	Notes          string     `json:"notes" gorm:"type:text"`
	CreatedBy      string     `json:"created_by" gorm:"size:64"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (ShippingDocument) TableName() string {
	return "shipping_documents"
}

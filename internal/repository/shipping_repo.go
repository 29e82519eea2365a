package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/freshport/freshport/internal/entity"
)

// ShippingRepository holds customs declarations and shipping documents.
type ShippingRepository struct {
	db *gorm.DB
}

func NewShippingRepository(db *gorm.DB) *ShippingRepository {
	return &ShippingRepository{db: db}
}

func (r *ShippingRepository) WithTx(tx *gorm.DB) *ShippingRepository {
	return &ShippingRepository{db: tx}
}

func (r *ShippingRepository) DB() *gorm.DB {
	return r.db
}

// --- Customs declarations ---

func (r *ShippingRepository) CreateDeclaration(d *entity.CustomsDeclaration) error {
	return r.db.Create(d).Error
}

func (r *ShippingRepository) SaveDeclaration(d *entity.CustomsDeclaration) error {
	return r.db.Save(d).Error
}

func (r *ShippingRepository) GetDeclarationByID(id string) (*entity.CustomsDeclaration, error) {
	var d entity.CustomsDeclaration
	err := r.db.Preload("Order").Where("id = ?", id).First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// LastDeclarationNumber returns the highest sequential declaration
// number, "" when none. Random-suffix fallback codes are excluded.
func (r *ShippingRepository) LastDeclarationNumber() (string, error) {
	var d entity.CustomsDeclaration
	err := r.db.Select("declaration_number").
		Where("declaration_number ~ '^TK-[0-9]{6,}$'").
		Order("length(declaration_number) DESC, declaration_number DESC").Limit(1).First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return d.DeclarationNumber, nil
}

func (r *ShippingRepository) ListDeclarations(orderID, status string, page, size int) ([]entity.CustomsDeclaration, int64, error) {
	query := r.db.Model(&entity.CustomsDeclaration{})
	if orderID != "" {
		query = query.Where("order_id = ?", orderID)
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
	var declarations []entity.CustomsDeclaration
	err := query.Order("created_at DESC").
		Offset((page - 1) * size).Limit(size).Find(&declarations).Error
	return declarations, total, err
}

// --- Shipping documents ---

func (r *ShippingRepository) CreateDocument(d *entity.ShippingDocument) error {
	return r.db.Create(d).Error
}

func (r *ShippingRepository) GetDocumentByID(id string) (*entity.ShippingDocument, error) {
	var d entity.ShippingDocument
	err := r.db.Where("id = ?", id).First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *ShippingRepository) ListDocumentsByOrder(orderID string) ([]entity.ShippingDocument, error) {
	var docs []entity.ShippingDocument
	err := r.db.Where("order_id = ?", orderID).
		Order("created_at ASC").Find(&docs).Error
	return docs, err
}

package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/freshport/freshport/internal/entity"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) WithTx(tx *gorm.DB) *OrderRepository {
	return &OrderRepository{db: tx}
}

func (r *OrderRepository) DB() *gorm.DB {
	return r.db
}

func (r *OrderRepository) Create(o *entity.Order) error {
	return r.db.Create(o).Error
}

func (r *OrderRepository) Save(o *entity.Order) error {
	return r.db.Save(o).Error
}

func (r *OrderRepository) GetByID(id string) (*entity.Order, error) {
	var o entity.Order
	err := r.db.Preload("Farmer").Preload("Customer").
		Preload("Details").Preload("Details.Product").
		Where("id = ?", id).First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// LastOrderNumber returns the highest sequential order number assigned
// for a type, or "" when none exists. Called inside the creating
// transaction. Unscoped so soft-deleted orders cannot free a number;
// random-suffix fallback codes are excluded from the scan.
func (r *OrderRepository) LastOrderNumber(orderType string) (string, error) {
	var o entity.Order
	err := r.db.Unscoped().Select("order_number").
		Where("order_type = ?", orderType).
		Where("order_number ~ '^[A-Z]+-[0-9]{6,}$'").
		Order("length(order_number) DESC, order_number DESC").Limit(1).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return o.OrderNumber, nil
}

type OrderListParams struct {
	OrderType     string
	Status        string
	PaymentStatus string
	FarmerID      string
	CustomerID    string
	Keyword       string
	Page          int
	Size          int
}

func (r *OrderRepository) List(params OrderListParams) ([]entity.Order, int64, error) {
	query := r.db.Model(&entity.Order{})
	if params.OrderType != "" {
		query = query.Where("order_type = ?", params.OrderType)
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.PaymentStatus != "" {
		query = query.Where("payment_status = ?", params.PaymentStatus)
	}
	if params.FarmerID != "" {
		query = query.Where("farmer_id = ?", params.FarmerID)
	}
	if params.CustomerID != "" {
		query = query.Where("customer_id = ?", params.CustomerID)
	}
	if params.Keyword != "" {
		query = query.Where("order_number ILIKE ?", "%"+params.Keyword+"%")
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
	var orders []entity.Order
	err := query.Preload("Farmer").Preload("Customer").
		Order("created_at DESC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).
		Find(&orders).Error
	return orders, total, err
}

func (r *OrderRepository) CreateDetail(d *entity.OrderDetail) error {
	return r.db.Create(d).Error
}

func (r *OrderRepository) DeleteDetailsByOrder(orderID string) error {
	return r.db.Where("order_id = ?", orderID).Delete(&entity.OrderDetail{}).Error
}

// Delete soft-deletes the order and removes its details and history in
// one transaction; there is no database-level cascade to rely on. The
// soft-deleted row keeps the order number out of circulation.
func (r *OrderRepository) Delete(orderID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).Delete(&entity.OrderDetail{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", orderID).Delete(&entity.OrderStatusHistory{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", orderID).Delete(&entity.Order{}).Error
	})
}

func (r *OrderRepository) CreateStatusHistory(h *entity.OrderStatusHistory) error {
	return r.db.Create(h).Error
}

func (r *OrderRepository) ListStatusHistory(orderID string) ([]entity.OrderStatusHistory, error) {
	var history []entity.OrderStatusHistory
	err := r.db.Where("order_id = ?", orderID).
		Order("changed_at ASC").Find(&history).Error
	return history, err
}

package repository

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/freshport/freshport/internal/entity"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) WithTx(tx *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: tx}
}

func (r *PaymentRepository) DB() *gorm.DB {
	return r.db
}

func (r *PaymentRepository) Create(p *entity.Payment) error {
	return r.db.Create(p).Error
}

func (r *PaymentRepository) GetByID(id string) (*entity.Payment, error) {
	var p entity.Payment
	err := r.db.Preload("Order").Where("id = ?", id).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// LastPaymentCode returns the highest sequential payment code, "" when
// none. Random-suffix fallback codes are excluded from the scan.
func (r *PaymentRepository) LastPaymentCode() (string, error) {
	var p entity.Payment
	err := r.db.Select("payment_code").
		Where("payment_code ~ '^PAY-[0-9]{6,}$'").
		Order("length(payment_code) DESC, payment_code DESC").Limit(1).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return p.PaymentCode, nil
}

// SumByOrder totals every payment recorded against an order.
func (r *PaymentRepository) SumByOrder(orderID string) (decimal.Decimal, error) {
	var result struct{ Total decimal.Decimal }
	err := r.db.Raw(`
		SELECT COALESCE(SUM(amount), 0) AS total
		FROM payments
		WHERE order_id = ?
	`, orderID).Scan(&result).Error
	return result.Total, err
}

func (r *PaymentRepository) ListByOrder(orderID string) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := r.db.Where("order_id = ?", orderID).
		Order("paid_at ASC").Find(&payments).Error
	return payments, err
}

func (r *PaymentRepository) List(direction, method string, page, size int) ([]entity.Payment, int64, error) {
	query := r.db.Model(&entity.Payment{})
	if direction != "" {
		query = query.Where("direction = ?", direction)
	}
	if method != "" {
		query = query.Where("method = ?", method)
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
	var payments []entity.Payment
	err := query.Preload("Order").Order("created_at DESC").
		Offset((page - 1) * size).Limit(size).Find(&payments).Error
	return payments, total, err
}

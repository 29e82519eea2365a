package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/freshport/freshport/internal/apperr"
	"github.com/freshport/freshport/internal/entity"
	"github.com/freshport/freshport/internal/repository"
)

// PaymentService records money against orders and rolls the order's
// payment_status forward: partial while the paid sum is short of the
// total, paid once it covers it.
type PaymentService struct {
	repo         *repository.PaymentRepository
	orderRepo    *repository.OrderRepository
	activityRepo *repository.ActivityLogRepository
}

func NewPaymentService(
	repo *repository.PaymentRepository,
	orderRepo *repository.OrderRepository,
	activityRepo *repository.ActivityLogRepository,
) *PaymentService {
	return &PaymentService{repo: repo, orderRepo: orderRepo, activityRepo: activityRepo}
}

type PaymentRequest struct {
	OrderID   string          `json:"order_id" binding:"required"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Currency  string          `json:"currency"`
	Reference string          `json:"reference"`
	Notes     string          `json:"notes"`
	PaidAt    string          `json:"paid_at"` // 2006-01-02, defaults to today
}

func (s *PaymentService) RecordPayment(req PaymentRequest, actorID string) (*entity.Payment, error) {
	if !req.Amount.IsPositive() {
		return nil, apperr.Validationf("amount must be greater than zero")
	}
	method := req.Method
	if method == "" {
		method = entity.PayMethodTransfer
	}
	switch method {
	case entity.PayMethodCash, entity.PayMethodTransfer, entity.PayMethodLC, entity.PayMethodOther:
	default:
		return nil, apperr.Validationf("unknown payment method %q", req.Method)
	}

	order, err := s.orderRepo.GetByID(req.OrderID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFoundf("order %s not found", req.OrderID)
		}
		return nil, apperr.Internalf(err, "load order")
	}
	if order.Status == entity.OrderCancelled {
		return nil, apperr.InvalidTransitionf("order %s is cancelled", order.OrderNumber)
	}

	// We pay farmers on purchase orders, customers pay us on sales.
	direction := entity.PayDirectionIn
	if order.OrderType == entity.OrderTypePurchase {
		direction = entity.PayDirectionOut
	}

	paidAt := time.Now()
	if req.PaidAt != "" {
		d, err := time.Parse("2006-01-02", req.PaidAt)
		if err != nil {
			return nil, apperr.Validationf("paid_at must be YYYY-MM-DD")
		}
		paidAt = d
	}
	currency := req.Currency
	if currency == "" {
		currency = "VND"
	}

	payment := &entity.Payment{
		ID:        uuid.New().String(),
		OrderID:   order.ID,
		Direction: direction,
		Method:    method,
		Amount:    req.Amount,
		Currency:  currency,
		PaidAt:    paidAt,
		Reference: req.Reference,
		Notes:     req.Notes,
		CreatedBy: actorID,
	}

	var fromStatus, toStatus string
	err = s.repo.DB().Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		last, err := txRepo.LastPaymentCode()
		if err != nil {
			return apperr.Internalf(err, "scan payment codes")
		}
		payment.PaymentCode = nextCode("PAY", last)
		if err := txRepo.Create(payment); err != nil {
			if !isDuplicate(err) {
				return apperr.Internalf(err, "create payment")
			}
			payment.PaymentCode = fallbackCode("PAY")
			if err := txRepo.Create(payment); err != nil {
				return apperr.Internalf(err, "create payment")
			}
		}

		paid, err := txRepo.SumByOrder(order.ID)
		if err != nil {
			return apperr.Internalf(err, "sum payments")
		}
		fromStatus = order.PaymentStatus
		if paid.GreaterThanOrEqual(order.TotalAmount) {
			order.PaymentStatus = entity.PaymentPaid
		} else {
			order.PaymentStatus = entity.PaymentPartial
		}
		toStatus = order.PaymentStatus
		order.Details = nil
		order.Farmer = nil
		order.Customer = nil
		return s.orderRepo.WithTx(tx).Save(order)
	})
	if err != nil {
		return nil, err
	}

	s.activityRepo.Log("order", order.ID, order.OrderNumber, entity.ActionPayment,
		fromStatus, toStatus,
		fmt.Sprintf("payment %s of %s %s recorded", payment.PaymentCode, payment.Amount, payment.Currency), actorID)
	return payment, nil
}

// RefundOrder marks an order's payments as refunded. Only cancelled or
// returned orders qualify.
func (s *PaymentService) RefundOrder(orderID, actorID string) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFoundf("order %s not found", orderID)
		}
		return nil, apperr.Internalf(err, "load order")
	}
	if order.Status != entity.OrderCancelled && order.Status != entity.OrderReturned {
		return nil, apperr.InvalidTransitionf("order %s must be cancelled or returned before a refund", order.OrderNumber)
	}
	if order.PaymentStatus == entity.PaymentPending {
		return nil, apperr.Validationf("order %s has no payments to refund", order.OrderNumber)
	}
	from := order.PaymentStatus
	order.PaymentStatus = entity.PaymentRefunded
	order.Details = nil
	order.Farmer = nil
	order.Customer = nil
	if err := s.orderRepo.Save(order); err != nil {
		return nil, apperr.Internalf(err, "save order")
	}
	s.activityRepo.Log("order", order.ID, order.OrderNumber, entity.ActionPayment,
		from, entity.PaymentRefunded, "order refunded", actorID)
	return order, nil
}

func (s *PaymentService) GetPayment(id string) (*entity.Payment, error) {
	payment, err := s.repo.GetByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFoundf("payment %s not found", id)
		}
		return nil, apperr.Internalf(err, "load payment")
	}
	return payment, nil
}

func (s *PaymentService) ListPaymentsByOrder(orderID string) ([]entity.Payment, error) {
	if _, err := s.orderRepo.GetByID(orderID); err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFoundf("order %s not found", orderID)
		}
		return nil, apperr.Internalf(err, "load order")
	}
	return s.repo.ListByOrder(orderID)
}

func (s *PaymentService) ListPayments(direction, method string, page, size int) ([]entity.Payment, int64, error) {
	return s.repo.List(direction, method, page, size)
}

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

var hundred = decimal.NewFromInt(100)

// OrderService owns purchase and sale orders: numbering, derived
// totals, the status machine and its history.
type OrderService struct {
	repo         *repository.OrderRepository
	partnerRepo  *repository.PartnerRepository
	productRepo  *repository.ProductRepository
	activityRepo *repository.ActivityLogRepository
}

func NewOrderService(
	repo *repository.OrderRepository,
	partnerRepo *repository.PartnerRepository,
	productRepo *repository.ProductRepository,
	activityRepo *repository.ActivityLogRepository,
) *OrderService {
	return &OrderService{
		repo:         repo,
		partnerRepo:  partnerRepo,
		productRepo:  productRepo,
		activityRepo: activityRepo,
	}
}

type OrderItemInput struct {
	ProductID string          `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Notes     string          `json:"notes"`
}

type CreateOrderRequest struct {
	OrderType       string           `json:"order_type" binding:"required"`
	PartnerID       string           `json:"partner_id" binding:"required"`
	Items           []OrderItemInput `json:"items" binding:"required"`
	DiscountPercent decimal.Decimal  `json:"discount_percent"`
	DeliveryDate    string           `json:"delivery_date"` // 2006-01-02
	ShippingAddress string           `json:"shipping_address"`
	ShippingContact string           `json:"shipping_contact"`
	ShippingPhone   string           `json:"shipping_phone"`
	Priority        string           `json:"priority"`
	Notes           string           `json:"notes"`
}

// CreateOrder creates an order with its lines and derived totals in one
// transaction. The partner is a farmer for purchase orders and a
// customer for sale orders; the order number is assigned inside the
// transaction with a random-suffix fallback on a numbering race.
func (s *OrderService) CreateOrder(req CreateOrderRequest, actorID string) (*entity.Order, error) {
	if req.OrderType != entity.OrderTypePurchase && req.OrderType != entity.OrderTypeSale {
		return nil, apperr.Validationf("order_type must be %q or %q",
			entity.OrderTypePurchase, entity.OrderTypeSale)
	}
	if len(req.Items) == 0 {
		return nil, apperr.Validationf("items must not be empty")
	}
	if req.DiscountPercent.IsNegative() || req.DiscountPercent.GreaterThan(hundred) {
		return nil, apperr.Validationf("discount_percent must be between 0 and 100")
	}
	priority := req.Priority
	if priority == "" {
		priority = entity.PriorityMedium
	}
	switch priority {
	case entity.PriorityLow, entity.PriorityMedium, entity.PriorityHigh, entity.PriorityUrgent:
	default:
		return nil, apperr.Validationf("unknown priority %q", req.Priority)
	}

	order := &entity.Order{
		ID:              uuid.New().String(),
		OrderType:       req.OrderType,
		Status:          entity.OrderDraft,
		PaymentStatus:   entity.PaymentPending,
		Priority:        priority,
		OrderDate:       time.Now(),
		ShippingAddress: req.ShippingAddress,
		ShippingContact: req.ShippingContact,
		ShippingPhone:   req.ShippingPhone,
		Notes:           req.Notes,
		CreatedBy:       actorID,
	}

	if req.OrderType == entity.OrderTypePurchase {
		farmer, err := s.partnerRepo.GetFarmerByID(req.PartnerID)
		if err != nil {
			if repository.IsNotFound(err) {
				return nil, apperr.NotFoundf("farmer %s not found", req.PartnerID)
			}
			return nil, apperr.Internalf(err, "load farmer")
		}
		order.FarmerID = &farmer.ID
		if order.ShippingAddress == "" {
			order.ShippingAddress = farmer.Address
		}
	} else {
		customer, err := s.partnerRepo.GetCustomerByID(req.PartnerID)
		if err != nil {
			if repository.IsNotFound(err) {
				return nil, apperr.NotFoundf("customer %s not found", req.PartnerID)
			}
			return nil, apperr.Internalf(err, "load customer")
		}
		order.CustomerID = &customer.ID
		if order.ShippingAddress == "" {
			order.ShippingAddress = customer.Address
		}
	}

	if req.DeliveryDate != "" {
		d, err := time.Parse("2006-01-02", req.DeliveryDate)
		if err != nil {
			return nil, apperr.Validationf("delivery_date must be YYYY-MM-DD")
		}
		order.DeliveryDate = &d
	}

	details, subtotal, err := s.buildDetails(order.ID, req.Items)
	if err != nil {
		return nil, err
	}
	applyTotals(order, subtotal, req.DiscountPercent)

	err = s.repo.DB().Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		last, err := txRepo.LastOrderNumber(req.OrderType)
		if err != nil {
			return apperr.Internalf(err, "scan order numbers")
		}
		prefix := entity.OrderNumberPrefix(req.OrderType)
		order.OrderNumber = nextCode(prefix, last)
		if err := txRepo.Create(order); err != nil {
			if !isDuplicate(err) {
				return apperr.Internalf(err, "create order")
			}
			// Numbering race: fall back to a random suffix so the
			// request still succeeds.
			order.OrderNumber = fallbackCode(prefix)
			if err := txRepo.Create(order); err != nil {
				return apperr.Internalf(err, "create order")
			}
		}
		for _, detail := range details {
			if err := txRepo.CreateDetail(detail); err != nil {
				return apperr.Internalf(err, "create order detail")
			}
		}
		return txRepo.CreateStatusHistory(&entity.OrderStatusHistory{
			ID:         uuid.New().String(),
			OrderID:    order.ID,
			FromStatus: "",
			ToStatus:   entity.OrderDraft,
			Notes:      "order created",
			ChangedBy:  actorID,
			ChangedAt:  time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}

	s.activityRepo.Log("order", order.ID, order.OrderNumber, entity.ActionCreate,
		"", entity.OrderDraft, fmt.Sprintf("%s order created with %d lines", order.OrderType, len(details)), actorID)
	return s.GetOrder(order.ID)
}

// buildDetails validates line items and returns detail rows plus the
// subtotal. Unit price defaults to the product's selling price; one
// line per product.
func (s *OrderService) buildDetails(orderID string, items []OrderItemInput) ([]*entity.OrderDetail, decimal.Decimal, error) {
	seen := make(map[string]bool, len(items))
	details := make([]*entity.OrderDetail, 0, len(items))
	subtotal := decimal.Zero
	for i, item := range items {
		if !item.Quantity.IsPositive() {
			return nil, decimal.Zero, apperr.Validationf("items[%d]: quantity must be greater than zero", i)
		}
		if item.UnitPrice.IsNegative() {
			return nil, decimal.Zero, apperr.Validationf("items[%d]: unit_price must not be negative", i)
		}
		if seen[item.ProductID] {
			return nil, decimal.Zero, apperr.Validationf("items[%d]: product %s appears more than once", i, item.ProductID)
		}
		seen[item.ProductID] = true

		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			if repository.IsNotFound(err) {
				return nil, decimal.Zero, apperr.NotFoundf("items[%d]: product %s not found", i, item.ProductID)
			}
			return nil, decimal.Zero, apperr.Internalf(err, "load product")
		}
		unitPrice := item.UnitPrice
		if unitPrice.IsZero() {
			unitPrice = product.SellingPrice
		}
		detail := &entity.OrderDetail{
			ID:        uuid.New().String(),
			OrderID:   orderID,
			ProductID: product.ID,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice,
			Notes:     item.Notes,
		}
		detail.ComputeTotal()
		details = append(details, detail)
		subtotal = subtotal.Add(detail.TotalPrice)
	}
	return details, subtotal, nil
}

// applyTotals rewrites the derived money fields from the line subtotal
// and the discount percentage.
func applyTotals(order *entity.Order, subtotal, discountPercent decimal.Decimal) {
	order.Subtotal = subtotal
	order.DiscountAmount = subtotal.Mul(discountPercent).Div(hundred).Round(2)
	order.TotalAmount = subtotal.Sub(order.DiscountAmount).
		Add(order.TaxAmount).Add(order.ShippingCost)
}

func (s *OrderService) GetOrder(id string) (*entity.Order, error) {
	order, err := s.repo.GetByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFoundf("order %s not found", id)
		}
		return nil, apperr.Internalf(err, "load order")
	}
	return order, nil
}

func (s *OrderService) ListOrders(params repository.OrderListParams) ([]entity.Order, int64, error) {
	return s.repo.List(params)
}

type UpdateOrderRequest struct {
	Items           []OrderItemInput `json:"items"`
	DiscountPercent *decimal.Decimal `json:"discount_percent"`
	DeliveryDate    string           `json:"delivery_date"`
	ShippingAddress string           `json:"shipping_address"`
	ShippingContact string           `json:"shipping_contact"`
	ShippingPhone   string           `json:"shipping_phone"`
	Priority        string           `json:"priority"`
	Notes           string           `json:"notes"`
}

// UpdateOrder replaces the lines and recomputes totals. Only draft and
// confirmed orders may change; later stages are frozen for accounting.
func (s *OrderService) UpdateOrder(id string, req UpdateOrderRequest, actorID string) (*entity.Order, error) {
	order, err := s.GetOrder(id)
	if err != nil {
		return nil, err
	}
	if order.Status != entity.OrderDraft && order.Status != entity.OrderConfirmed {
		return nil, apperr.InvalidTransitionf("order %s is %s and can no longer be edited",
			order.OrderNumber, order.Status)
	}

	discountPercent := decimal.Zero
	if order.Subtotal.IsPositive() {
		discountPercent = order.DiscountAmount.Mul(hundred).Div(order.Subtotal)
	}
	if req.DiscountPercent != nil {
		if req.DiscountPercent.IsNegative() || req.DiscountPercent.GreaterThan(hundred) {
			return nil, apperr.Validationf("discount_percent must be between 0 and 100")
		}
		discountPercent = *req.DiscountPercent
	}
	if req.DeliveryDate != "" {
		d, err := time.Parse("2006-01-02", req.DeliveryDate)
		if err != nil {
			return nil, apperr.Validationf("delivery_date must be YYYY-MM-DD")
		}
		order.DeliveryDate = &d
	}
	if req.ShippingAddress != "" {
		order.ShippingAddress = req.ShippingAddress
	}
	if req.ShippingContact != "" {
		order.ShippingContact = req.ShippingContact
	}
	if req.ShippingPhone != "" {
		order.ShippingPhone = req.ShippingPhone
	}
	if req.Priority != "" {
		switch req.Priority {
		case entity.PriorityLow, entity.PriorityMedium, entity.PriorityHigh, entity.PriorityUrgent:
			order.Priority = req.Priority
		default:
			return nil, apperr.Validationf("unknown priority %q", req.Priority)
		}
	}
	if req.Notes != "" {
		order.Notes = req.Notes
	}
	order.UpdatedBy = actorID

	var details []*entity.OrderDetail
	subtotal := order.Subtotal
	if req.Items != nil {
		if len(req.Items) == 0 {
			return nil, apperr.Validationf("items must not be empty")
		}
		details, subtotal, err = s.buildDetails(order.ID, req.Items)
		if err != nil {
			return nil, err
		}
	}
	applyTotals(order, subtotal, discountPercent)

	err = s.repo.DB().Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if details != nil {
			if err := txRepo.DeleteDetailsByOrder(order.ID); err != nil {
				return apperr.Internalf(err, "replace order details")
			}
			for _, detail := range details {
				if err := txRepo.CreateDetail(detail); err != nil {
					return apperr.Internalf(err, "create order detail")
				}
			}
		}
		order.Details = nil
		return txRepo.Save(order)
	})
	if err != nil {
		return nil, err
	}

	s.activityRepo.Log("order", order.ID, order.OrderNumber, entity.ActionUpdate,
		"", "", "order updated", actorID)
	return s.GetOrder(order.ID)
}

type StatusChangeRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

// ChangeStatus moves an order along the status machine: strictly
// forward on the main chain, or into cancelled/returned from any
// non-terminal state. Every accepted change lands in the history.
func (s *OrderService) ChangeStatus(id string, req StatusChangeRequest, actorID string) (*entity.Order, error) {
	order, err := s.GetOrder(id)
	if err != nil {
		return nil, err
	}
	if !entity.CanTransitionOrderStatus(order.Status, req.Status) {
		return nil, apperr.InvalidTransitionf("cannot move order %s from %s to %s",
			order.OrderNumber, order.Status, req.Status)
	}
	from := order.Status
	order.Status = req.Status
	order.UpdatedBy = actorID

	err = s.repo.DB().Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		order.Details = nil
		order.Farmer = nil
		order.Customer = nil
		if err := txRepo.Save(order); err != nil {
			return apperr.Internalf(err, "save order")
		}
		return txRepo.CreateStatusHistory(&entity.OrderStatusHistory{
			ID:         uuid.New().String(),
			OrderID:    order.ID,
			FromStatus: from,
			ToStatus:   req.Status,
			Notes:      req.Notes,
			ChangedBy:  actorID,
			ChangedAt:  time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}

	s.activityRepo.Log("order", order.ID, order.OrderNumber, entity.ActionStatusChange,
		from, req.Status, req.Notes, actorID)
	return s.GetOrder(order.ID)
}

func (s *OrderService) ListStatusHistory(orderID string) ([]entity.OrderStatusHistory, error) {
	if _, err := s.GetOrder(orderID); err != nil {
		return nil, err
	}
	return s.repo.ListStatusHistory(orderID)
}

// DeleteOrder removes a draft order with its lines and history. Orders
// past draft are cancelled through the status machine instead.
func (s *OrderService) DeleteOrder(id, actorID string) error {
	order, err := s.GetOrder(id)
	if err != nil {
		return err
	}
	if order.Status != entity.OrderDraft {
		return apperr.InvalidTransitionf("only draft orders can be deleted; cancel order %s instead",
			order.OrderNumber)
	}
	if err := s.repo.Delete(order.ID); err != nil {
		return apperr.Internalf(err, "delete order")
	}
	s.activityRepo.Log("order", order.ID, order.OrderNumber, entity.ActionDelete,
		"", "", "draft order deleted", actorID)
	return nil
}

package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freshport/freshport/internal/apperr"
	"github.com/freshport/freshport/internal/entity"
	"github.com/freshport/freshport/internal/repository"
	"github.com/freshport/freshport/internal/testutil"
)

func setupOrderTest(t *testing.T) (*gorm.DB, *OrderService) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	svc := NewOrderService(repos.Order, repos.Partner, repos.Product, repos.ActivityLog)

	testutil.SeedFarmer(t, db, "farmer-1", "F-000001", "Hoa Loc farm")
	testutil.SeedCustomer(t, db, "cust-1", "C-000001", "Saigon Fruit Trading")
	testutil.SeedProduct(t, db, "prod-1", "MANGO-01", "Cat Chu mango", dec("2000"))
	testutil.SeedProduct(t, db, "prod-2", "DRAGON-01", "Dragon fruit", dec("3000"))
	return db, svc
}

func TestCreateOrderTotals(t *testing.T) {
	_, svc := setupOrderTest(t)

	order, err := svc.CreateOrder(CreateOrderRequest{
		OrderType: entity.OrderTypeSale,
		PartnerID: "cust-1",
		Items: []OrderItemInput{
			{ProductID: "prod-1", Quantity: dec("10"), UnitPrice: dec("2000")},
			{ProductID: "prod-2", Quantity: dec("5"), UnitPrice: dec("3000")},
		},
		DiscountPercent: dec("10"),
	}, "tester")
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if !order.Subtotal.Equal(dec("35000")) {
		t.Errorf("Subtotal = %s, want 35000", order.Subtotal)
	}
	if !order.DiscountAmount.Equal(dec("3500")) {
		t.Errorf("DiscountAmount = %s, want 3500", order.DiscountAmount)
	}
	if !order.TotalAmount.Equal(dec("31500")) {
		t.Errorf("TotalAmount = %s, want 31500", order.TotalAmount)
	}
	if order.Status != entity.OrderDraft {
		t.Errorf("Status = %q, want draft", order.Status)
	}
	if order.PaymentStatus != entity.PaymentPending {
		t.Errorf("PaymentStatus = %q, want pending", order.PaymentStatus)
	}
	if len(order.Details) != 2 {
		t.Fatalf("expected 2 details, got %d", len(order.Details))
	}
	if order.CustomerID == nil || *order.CustomerID != "cust-1" {
		t.Error("expected customer to be linked")
	}
	if order.FarmerID != nil {
		t.Error("sale order must not link a farmer")
	}
}

func TestCreateOrderNumberSequence(t *testing.T) {
	_, svc := setupOrderTest(t)

	items := []OrderItemInput{{ProductID: "prod-1", Quantity: dec("1"), UnitPrice: dec("2000")}}

	first, err := svc.CreateOrder(CreateOrderRequest{
		OrderType: entity.OrderTypePurchase, PartnerID: "farmer-1", Items: items,
	}, "tester")
	if err != nil {
		t.Fatalf("first order: %v", err)
	}
	if first.OrderNumber != "PO-000001" {
		t.Errorf("first order number = %q, want PO-000001", first.OrderNumber)
	}

	second, err := svc.CreateOrder(CreateOrderRequest{
		OrderType: entity.OrderTypePurchase, PartnerID: "farmer-1", Items: items,
	}, "tester")
	if err != nil {
		t.Fatalf("second order: %v", err)
	}
	if second.OrderNumber != "PO-000002" {
		t.Errorf("second order number = %q, want PO-000002", second.OrderNumber)
	}

	// Sale orders number independently.
	sale, err := svc.CreateOrder(CreateOrderRequest{
		OrderType: entity.OrderTypeSale, PartnerID: "cust-1", Items: items,
	}, "tester")
	if err != nil {
		t.Fatalf("sale order: %v", err)
	}
	if sale.OrderNumber != "SO-000001" {
		t.Errorf("sale order number = %q, want SO-000001", sale.OrderNumber)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	_, svc := setupOrderTest(t)
	items := []OrderItemInput{{ProductID: "prod-1", Quantity: dec("1")}}

	_, err := svc.CreateOrder(CreateOrderRequest{
		OrderType: "barter", PartnerID: "cust-1", Items: items,
	}, "tester")
	if !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("bad order type: expected validation error, got %v", err)
	}

	_, err = svc.CreateOrder(CreateOrderRequest{
		OrderType: entity.OrderTypeSale, PartnerID: "missing", Items: items,
	}, "tester")
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("missing customer: expected not found error, got %v", err)
	}

	// Purchase orders resolve the partner against farmers, not customers.
	_, err = svc.CreateOrder(CreateOrderRequest{
		OrderType: entity.OrderTypePurchase, PartnerID: "cust-1", Items: items,
	}, "tester")
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("customer on purchase order: expected not found error, got %v", err)
	}

	_, err = svc.CreateOrder(CreateOrderRequest{
		OrderType: entity.OrderTypeSale, PartnerID: "cust-1", Items: nil,
	}, "tester")
	if !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("empty items: expected validation error, got %v", err)
	}

	_, err = svc.CreateOrder(CreateOrderRequest{
		OrderType: entity.OrderTypeSale, PartnerID: "cust-1",
		Items: []OrderItemInput{
			{ProductID: "prod-1", Quantity: dec("1")},
			{ProductID: "prod-1", Quantity: dec("2")},
		},
	}, "tester")
	if !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("duplicate product line: expected validation error, got %v", err)
	}
}

func TestCreateOrderDefaultsUnitPrice(t *testing.T) {
	_, svc := setupOrderTest(t)

	order, err := svc.CreateOrder(CreateOrderRequest{
		OrderType: entity.OrderTypeSale,
		PartnerID: "cust-1",
		Items:     []OrderItemInput{{ProductID: "prod-2", Quantity: dec("4")}},
	}, "tester")
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if !order.Details[0].UnitPrice.Equal(dec("3000")) {
		t.Errorf("unit price defaulted to %s, want selling price 3000", order.Details[0].UnitPrice)
	}
	if !order.TotalAmount.Equal(dec("12000")) {
		t.Errorf("TotalAmount = %s, want 12000", order.TotalAmount)
	}
}

func TestChangeStatusMachine(t *testing.T) {
	_, svc := setupOrderTest(t)
	order, err := svc.CreateOrder(CreateOrderRequest{
		OrderType: entity.OrderTypeSale, PartnerID: "cust-1",
		Items: []OrderItemInput{{ProductID: "prod-1", Quantity: dec("1")}},
	}, "tester")
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	order, err = svc.ChangeStatus(order.ID, StatusChangeRequest{Status: entity.OrderConfirmed}, "tester")
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}

	// Backward move is rejected.
	if _, err := svc.ChangeStatus(order.ID, StatusChangeRequest{Status: entity.OrderDraft}, "tester"); !apperr.Is(err, apperr.KindInvalidTransition) {
		t.Errorf("backward: expected invalid transition, got %v", err)
	}

	// Forward jump over several states is allowed.
	order, err = svc.ChangeStatus(order.ID, StatusChangeRequest{Status: entity.OrderShipped}, "tester")
	if err != nil {
		t.Fatalf("ship: %v", err)
	}

	// Cancel from a non-terminal state is allowed.
	order, err = svc.ChangeStatus(order.ID, StatusChangeRequest{Status: entity.OrderCancelled, Notes: "cold chain broken"}, "tester")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}

	// Terminal states are final.
	if _, err := svc.ChangeStatus(order.ID, StatusChangeRequest{Status: entity.OrderConfirmed}, "tester"); !apperr.Is(err, apperr.KindInvalidTransition) {
		t.Errorf("out of cancelled: expected invalid transition, got %v", err)
	}

	history, err := svc.ListStatusHistory(order.ID)
	if err != nil {
		t.Fatalf("ListStatusHistory: %v", err)
	}
	// create + confirm + ship + cancel
	if len(history) != 4 {
		t.Fatalf("expected 4 history entries, got %d", len(history))
	}
	last := history[len(history)-1]
	if last.FromStatus != entity.OrderShipped || last.ToStatus != entity.OrderCancelled {
		t.Errorf("last transition %s -> %s, want shipped -> cancelled", last.FromStatus, last.ToStatus)
	}
}

func TestUpdateOrderRecomputesTotals(t *testing.T) {
	_, svc := setupOrderTest(t)
	order, err := svc.CreateOrder(CreateOrderRequest{
		OrderType: entity.OrderTypeSale, PartnerID: "cust-1",
		Items:           []OrderItemInput{{ProductID: "prod-1", Quantity: dec("10"), UnitPrice: dec("2000")}},
		DiscountPercent: dec("10"),
	}, "tester")
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	updated, err := svc.UpdateOrder(order.ID, UpdateOrderRequest{
		Items: []OrderItemInput{
			{ProductID: "prod-1", Quantity: dec("10"), UnitPrice: dec("2000")},
			{ProductID: "prod-2", Quantity: dec("5"), UnitPrice: dec("3000")},
		},
	}, "tester")
	if err != nil {
		t.Fatalf("UpdateOrder: %v", err)
	}
	if !updated.Subtotal.Equal(dec("35000")) {
		t.Errorf("Subtotal = %s, want 35000", updated.Subtotal)
	}
	// The discount percentage survives the line replacement.
	if !updated.TotalAmount.Equal(dec("31500")) {
		t.Errorf("TotalAmount = %s, want 31500", updated.TotalAmount)
	}
	if len(updated.Details) != 2 {
		t.Errorf("expected 2 details after update, got %d", len(updated.Details))
	}

	// Frozen after shipping.
	if _, err := svc.ChangeStatus(order.ID, StatusChangeRequest{Status: entity.OrderShipped}, "tester"); err != nil {
		t.Fatalf("ship: %v", err)
	}
	if _, err := svc.UpdateOrder(order.ID, UpdateOrderRequest{Notes: "late edit"}, "tester"); !apperr.Is(err, apperr.KindInvalidTransition) {
		t.Errorf("edit after shipping: expected invalid transition, got %v", err)
	}
}

func TestDeleteOrderDraftOnly(t *testing.T) {
	db, svc := setupOrderTest(t)
	order, err := svc.CreateOrder(CreateOrderRequest{
		OrderType: entity.OrderTypeSale, PartnerID: "cust-1",
		Items: []OrderItemInput{{ProductID: "prod-1", Quantity: dec("1")}},
	}, "tester")
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if err := svc.DeleteOrder(order.ID, "tester"); err != nil {
		t.Fatalf("DeleteOrder: %v", err)
	}
	if _, err := svc.GetOrder(order.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("deleted order still loads: %v", err)
	}
	var detailCount int64
	if err := db.Model(&entity.OrderDetail{}).Where("order_id = ?", order.ID).Count(&detailCount).Error; err != nil {
		t.Fatalf("count details: %v", err)
	}
	if detailCount != 0 {
		t.Errorf("expected details to be removed, found %d", detailCount)
	}

	confirmed, err := svc.CreateOrder(CreateOrderRequest{
		OrderType: entity.OrderTypeSale, PartnerID: "cust-1",
		Items: []OrderItemInput{{ProductID: "prod-1", Quantity: dec("1")}},
	}, "tester")
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if _, err := svc.ChangeStatus(confirmed.ID, StatusChangeRequest{Status: entity.OrderConfirmed}, "tester"); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if err := svc.DeleteOrder(confirmed.ID, "tester"); !apperr.Is(err, apperr.KindInvalidTransition) {
		t.Errorf("delete confirmed order: expected invalid transition, got %v", err)
	}
}

func TestOrderNumberSkipsFallbackCodes(t *testing.T) {
	db, svc := setupOrderTest(t)

	items := []OrderItemInput{{ProductID: "prod-1", Quantity: dec("1"), UnitPrice: dec("2000")}}
	first, err := svc.CreateOrder(CreateOrderRequest{
		OrderType: entity.OrderTypePurchase, PartnerID: "farmer-1", Items: items,
	}, "tester")
	if err != nil {
		t.Fatalf("first order: %v", err)
	}
	if first.OrderNumber != "PO-000001" {
		t.Fatalf("first order number = %q, want PO-000001", first.OrderNumber)
	}

	// A lost numbering race leaves a random-suffix number behind. It
	// sorts above every sequential number, but the next scan must not
	// pick it up and restart the sequence.
	farmerID := "farmer-1"
	if err := db.Create(&entity.Order{
		ID:            uuid.New().String(),
		OrderNumber:   "PO-3F2A9C",
		OrderType:     entity.OrderTypePurchase,
		FarmerID:      &farmerID,
		Status:        entity.OrderDraft,
		PaymentStatus: entity.PaymentPending,
		Priority:      entity.PriorityMedium,
		OrderDate:     time.Now(),
	}).Error; err != nil {
		t.Fatalf("insert fallback order: %v", err)
	}

	second, err := svc.CreateOrder(CreateOrderRequest{
		OrderType: entity.OrderTypePurchase, PartnerID: "farmer-1", Items: items,
	}, "tester")
	if err != nil {
		t.Fatalf("second order: %v", err)
	}
	if second.OrderNumber != "PO-000002" {
		t.Errorf("second order number = %q, want PO-000002", second.OrderNumber)
	}
}

func TestDeletedOrderNumberNotReused(t *testing.T) {
	_, svc := setupOrderTest(t)

	items := []OrderItemInput{{ProductID: "prod-1", Quantity: dec("1"), UnitPrice: dec("2000")}}
	first, err := svc.CreateOrder(CreateOrderRequest{
		OrderType: entity.OrderTypePurchase, PartnerID: "farmer-1", Items: items,
	}, "tester")
	if err != nil {
		t.Fatalf("first order: %v", err)
	}
	if first.OrderNumber != "PO-000001" {
		t.Fatalf("first order number = %q, want PO-000001", first.OrderNumber)
	}

	if err := svc.DeleteOrder(first.ID, "tester"); err != nil {
		t.Fatalf("DeleteOrder: %v", err)
	}
	if _, err := svc.GetOrder(first.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("deleted order still loads: %v", err)
	}

	// Numbers are assigned exactly once; deletion must not free one.
	second, err := svc.CreateOrder(CreateOrderRequest{
		OrderType: entity.OrderTypePurchase, PartnerID: "farmer-1", Items: items,
	}, "tester")
	if err != nil {
		t.Fatalf("second order: %v", err)
	}
	if second.OrderNumber != "PO-000002" {
		t.Errorf("second order number = %q, want PO-000002", second.OrderNumber)
	}
}

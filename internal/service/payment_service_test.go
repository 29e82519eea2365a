package service

import (
	"testing"

	"gorm.io/gorm"

	"github.com/freshport/freshport/internal/apperr"
	"github.com/freshport/freshport/internal/entity"
	"github.com/freshport/freshport/internal/repository"
	"github.com/freshport/freshport/internal/testutil"
)

func setupPaymentTest(t *testing.T) (*gorm.DB, *PaymentService, *OrderService, *entity.Order) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	orderSvc := NewOrderService(repos.Order, repos.Partner, repos.Product, repos.ActivityLog)
	paymentSvc := NewPaymentService(repos.Payment, repos.Order, repos.ActivityLog)

	testutil.SeedCustomer(t, db, "cust-1", "C-000001", "Saigon Fruit Trading")
	testutil.SeedProduct(t, db, "prod-1", "MANGO-01", "Cat Chu mango", dec("2000"))

	order, err := orderSvc.CreateOrder(CreateOrderRequest{
		OrderType: entity.OrderTypeSale,
		PartnerID: "cust-1",
		Items:     []OrderItemInput{{ProductID: "prod-1", Quantity: dec("10"), UnitPrice: dec("2000")}},
	}, "tester")
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	// total 20000
	return db, paymentSvc, orderSvc, order
}

func TestRecordPaymentRollsStatusForward(t *testing.T) {
	_, svc, orderSvc, order := setupPaymentTest(t)

	first, err := svc.RecordPayment(PaymentRequest{
		OrderID: order.ID, Amount: dec("8000"), Method: entity.PayMethodTransfer,
	}, "tester")
	if err != nil {
		t.Fatalf("first payment: %v", err)
	}
	if first.PaymentCode != "PAY-000001" {
		t.Errorf("payment code = %q, want PAY-000001", first.PaymentCode)
	}
	if first.Direction != entity.PayDirectionIn {
		t.Errorf("direction = %q, want incoming for a sale order", first.Direction)
	}

	reloaded, err := orderSvc.GetOrder(order.ID)
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if reloaded.PaymentStatus != entity.PaymentPartial {
		t.Errorf("payment status = %q, want partial", reloaded.PaymentStatus)
	}

	second, err := svc.RecordPayment(PaymentRequest{
		OrderID: order.ID, Amount: dec("12000"),
	}, "tester")
	if err != nil {
		t.Fatalf("second payment: %v", err)
	}
	if second.PaymentCode != "PAY-000002" {
		t.Errorf("payment code = %q, want PAY-000002", second.PaymentCode)
	}

	reloaded, err = orderSvc.GetOrder(order.ID)
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if reloaded.PaymentStatus != entity.PaymentPaid {
		t.Errorf("payment status = %q, want paid", reloaded.PaymentStatus)
	}

	payments, err := svc.ListPaymentsByOrder(order.ID)
	if err != nil {
		t.Fatalf("ListPaymentsByOrder: %v", err)
	}
	if len(payments) != 2 {
		t.Errorf("expected 2 payments, got %d", len(payments))
	}
}

func TestRecordPaymentValidation(t *testing.T) {
	_, svc, _, order := setupPaymentTest(t)

	if _, err := svc.RecordPayment(PaymentRequest{OrderID: order.ID, Amount: dec("0")}, "tester"); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("zero amount: expected validation error, got %v", err)
	}
	if _, err := svc.RecordPayment(PaymentRequest{OrderID: order.ID, Amount: dec("10"), Method: "barter"}, "tester"); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("bad method: expected validation error, got %v", err)
	}
	if _, err := svc.RecordPayment(PaymentRequest{OrderID: "missing", Amount: dec("10")}, "tester"); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("missing order: expected not found error, got %v", err)
	}
}

func TestRefundOrder(t *testing.T) {
	_, svc, orderSvc, order := setupPaymentTest(t)

	if _, err := svc.RecordPayment(PaymentRequest{OrderID: order.ID, Amount: dec("20000")}, "tester"); err != nil {
		t.Fatalf("pay: %v", err)
	}

	// Refund requires a cancelled or returned order.
	if _, err := svc.RefundOrder(order.ID, "tester"); !apperr.Is(err, apperr.KindInvalidTransition) {
		t.Errorf("refund active order: expected invalid transition, got %v", err)
	}

	if _, err := orderSvc.ChangeStatus(order.ID, StatusChangeRequest{Status: entity.OrderCancelled}, "tester"); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	refunded, err := svc.RefundOrder(order.ID, "tester")
	if err != nil {
		t.Fatalf("RefundOrder: %v", err)
	}
	if refunded.PaymentStatus != entity.PaymentRefunded {
		t.Errorf("payment status = %q, want refunded", refunded.PaymentStatus)
	}
}

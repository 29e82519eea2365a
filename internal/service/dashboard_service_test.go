package service

import (
	"context"
	"testing"

	"github.com/freshport/freshport/internal/entity"
	"github.com/freshport/freshport/internal/repository"
	"github.com/freshport/freshport/internal/testutil"
)

// Without a redis client the summary is rebuilt on every call, which is
// what the test wants anyway.
func TestDashboardSummary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	orderSvc := NewOrderService(repos.Order, repos.Partner, repos.Product, repos.ActivityLog)
	paymentSvc := NewPaymentService(repos.Payment, repos.Order, repos.ActivityLog)
	svc := NewDashboardService(db, nil)

	testutil.SeedWarehouse(t, db, "wh-1", "WH-01", "Cold storage A")
	testutil.SeedFarmer(t, db, "farmer-1", "F-000001", "Hoa Loc farm")
	testutil.SeedCustomer(t, db, "cust-1", "C-000001", "Saigon Fruit Trading")
	testutil.SeedProduct(t, db, "prod-1", "MANGO-01", "Cat Chu mango", dec("2000"))
	testutil.SeedProduct(t, db, "prod-2", "DRAGON-01", "Dragon fruit", dec("3000"))

	sale, err := orderSvc.CreateOrder(CreateOrderRequest{
		OrderType: entity.OrderTypeSale, PartnerID: "cust-1",
		Items: []OrderItemInput{{ProductID: "prod-1", Quantity: dec("10"), UnitPrice: dec("2000")}},
	}, "tester")
	if err != nil {
		t.Fatalf("sale order: %v", err)
	}
	if _, err := orderSvc.CreateOrder(CreateOrderRequest{
		OrderType: entity.OrderTypePurchase, PartnerID: "farmer-1",
		Items: []OrderItemInput{{ProductID: "prod-2", Quantity: dec("5"), UnitPrice: dec("1000")}},
	}, "tester"); err != nil {
		t.Fatalf("purchase order: %v", err)
	}

	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.Warehouses != 1 || summary.Products != 2 || summary.Farmers != 1 || summary.Customers != 1 {
		t.Errorf("counts = %d/%d/%d/%d, want 1/2/1/1",
			summary.Warehouses, summary.Products, summary.Farmers, summary.Customers)
	}
	if summary.OrdersByStatus[entity.OrderDraft] != 2 {
		t.Errorf("draft orders = %d, want 2", summary.OrdersByStatus[entity.OrderDraft])
	}
	if summary.PendingPayment != 2 {
		t.Errorf("pending payment orders = %d, want 2", summary.PendingPayment)
	}
	if !summary.SaleTotal.Equal(dec("20000")) {
		t.Errorf("SaleTotal = %s, want 20000", summary.SaleTotal)
	}
	if !summary.PurchaseTotal.Equal(dec("5000")) {
		t.Errorf("PurchaseTotal = %s, want 5000", summary.PurchaseTotal)
	}

	// Paying an order in full drops it out of the pending count.
	if _, err := paymentSvc.RecordPayment(PaymentRequest{
		OrderID: sale.ID, Amount: dec("20000"), Method: entity.PayMethodTransfer,
	}, "tester"); err != nil {
		t.Fatalf("pay: %v", err)
	}
	summary, err = svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary after payment: %v", err)
	}
	if summary.PendingPayment != 1 {
		t.Errorf("pending payment orders = %d, want 1", summary.PendingPayment)
	}
}

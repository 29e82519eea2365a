package service

import (
	"testing"

	"gorm.io/gorm"

	"github.com/freshport/freshport/internal/apperr"
	"github.com/freshport/freshport/internal/entity"
	"github.com/freshport/freshport/internal/repository"
	"github.com/freshport/freshport/internal/testutil"
)

func setupShippingTest(t *testing.T) (*gorm.DB, *ShippingService, *entity.Order) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	orderSvc := NewOrderService(repos.Order, repos.Partner, repos.Product, repos.ActivityLog)
	svc := NewShippingService(repos.Shipping, repos.Order, repos.ActivityLog)

	testutil.SeedCustomer(t, db, "cust-1", "C-000001", "Saigon Fruit Trading")
	testutil.SeedProduct(t, db, "prod-1", "MANGO-01", "Cat Chu mango", dec("2000"))

	order, err := orderSvc.CreateOrder(CreateOrderRequest{
		OrderType: entity.OrderTypeSale,
		PartnerID: "cust-1",
		Items:     []OrderItemInput{{ProductID: "prod-1", Quantity: dec("100"), UnitPrice: dec("2000")}},
	}, "tester")
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	return db, svc, order
}

func TestCreateDeclarationDerivesTotalTax(t *testing.T) {
	_, svc, order := setupShippingTest(t)

	declaration, err := svc.CreateDeclaration(DeclarationRequest{
		OrderID:       order.ID,
		CustomsOffice: "Cat Lai port",
		DeclaredValue: dec("200000"),
		CustomsDuty:   dec("10000"),
		VATAmount:     dec("16000"),
		OtherFees:     dec("1500"),
	}, "tester")
	if err != nil {
		t.Fatalf("CreateDeclaration: %v", err)
	}
	if declaration.DeclarationNumber != "TK-000001" {
		t.Errorf("declaration number = %q, want TK-000001", declaration.DeclarationNumber)
	}
	if !declaration.TotalTax.Equal(dec("27500")) {
		t.Errorf("TotalTax = %s, want 27500", declaration.TotalTax)
	}
	if declaration.Status != entity.DeclarationDraft {
		t.Errorf("status = %q, want draft", declaration.Status)
	}
}

func TestDeclarationStatusFlow(t *testing.T) {
	_, svc, order := setupShippingTest(t)

	declaration, err := svc.CreateDeclaration(DeclarationRequest{OrderID: order.ID}, "tester")
	if err != nil {
		t.Fatalf("CreateDeclaration: %v", err)
	}

	// draft cannot clear directly.
	if _, err := svc.ChangeDeclarationStatus(declaration.ID, entity.DeclarationCleared, "tester"); !apperr.Is(err, apperr.KindInvalidTransition) {
		t.Errorf("draft->cleared: expected invalid transition, got %v", err)
	}

	submitted, err := svc.ChangeDeclarationStatus(declaration.ID, entity.DeclarationSubmitted, "tester")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if submitted.DeclaredAt == nil {
		t.Error("submitting should stamp declared_at")
	}

	// Submitted paperwork is immutable.
	if _, err := svc.UpdateDeclaration(declaration.ID, DeclarationUpdateRequest{Notes: "late edit"}, "tester"); !apperr.Is(err, apperr.KindInvalidTransition) {
		t.Errorf("edit after submit: expected invalid transition, got %v", err)
	}

	cleared, err := svc.ChangeDeclarationStatus(declaration.ID, entity.DeclarationCleared, "tester")
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if cleared.ClearedAt == nil {
		t.Error("clearing should stamp cleared_at")
	}
	if _, err := svc.ChangeDeclarationStatus(declaration.ID, entity.DeclarationRejected, "tester"); !apperr.Is(err, apperr.KindInvalidTransition) {
		t.Errorf("cleared->rejected: expected invalid transition, got %v", err)
	}
}

func TestShippingDocuments(t *testing.T) {
	_, svc, order := setupShippingTest(t)

	document, err := svc.AddDocument(ShippingDocumentRequest{
		OrderID:        order.ID,
		DocumentType:   entity.ShipDocPhytosanitary,
		DocumentNumber: "PHY-2026-0042",
		IssuedBy:       "Plant Protection Department",
		IssuedAt:       "2026-08-20",
	}, "tester")
	if err != nil {
		t.Fatalf("AddDocument: %v", err)
	}
	if document.IssuedAt == nil {
		t.Error("issued_at should be parsed")
	}

	if _, err := svc.AddDocument(ShippingDocumentRequest{
		OrderID: order.ID, DocumentType: "napkin", DocumentNumber: "X",
	}, "tester"); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("bad document type: expected validation error, got %v", err)
	}

	documents, err := svc.ListDocumentsByOrder(order.ID)
	if err != nil {
		t.Fatalf("ListDocumentsByOrder: %v", err)
	}
	if len(documents) != 1 {
		t.Errorf("expected 1 document, got %d", len(documents))
	}
}

package service

import (
	"testing"

	"github.com/freshport/freshport/internal/apperr"
	"github.com/freshport/freshport/internal/repository"
	"github.com/freshport/freshport/internal/testutil"
)

func setupPartnerTest(t *testing.T) *PartnerService {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	return NewPartnerService(repos.Partner, repos.ActivityLog)
}

func TestFarmerCodeSequence(t *testing.T) {
	svc := setupPartnerTest(t)

	first, err := svc.CreateFarmer(FarmerRequest{Name: "Hoa Loc farm"}, "tester")
	if err != nil {
		t.Fatalf("first farmer: %v", err)
	}
	if first.FarmerCode != "F-000001" {
		t.Errorf("farmer code = %q, want F-000001", first.FarmerCode)
	}
	if first.FarmerType != "individual" {
		t.Errorf("farmer type defaulted to %q, want individual", first.FarmerType)
	}

	second, err := svc.CreateFarmer(FarmerRequest{Name: "Mekong cooperative", FarmerType: "cooperative"}, "tester")
	if err != nil {
		t.Fatalf("second farmer: %v", err)
	}
	if second.FarmerCode != "F-000002" {
		t.Errorf("farmer code = %q, want F-000002", second.FarmerCode)
	}
}

func TestCustomerCodeSequenceAndDuplicateTaxCode(t *testing.T) {
	svc := setupPartnerTest(t)

	first, err := svc.CreateCustomer(CustomerRequest{Name: "Saigon Fruit Trading", TaxCode: "0301234567"}, "tester")
	if err != nil {
		t.Fatalf("first customer: %v", err)
	}
	if first.CustomerCode != "C-000001" {
		t.Errorf("customer code = %q, want C-000001", first.CustomerCode)
	}

	if _, err := svc.CreateCustomer(CustomerRequest{Name: "Shadow Trading", TaxCode: "0301234567"}, "tester"); !apperr.Is(err, apperr.KindDuplicate) {
		t.Errorf("duplicate tax code: expected duplicate error, got %v", err)
	}

	// Empty tax codes never collide.
	second, err := svc.CreateCustomer(CustomerRequest{Name: "Hanoi Fresh Mart"}, "tester")
	if err != nil {
		t.Fatalf("second customer: %v", err)
	}
	third, err := svc.CreateCustomer(CustomerRequest{Name: "Danang Market"}, "tester")
	if err != nil {
		t.Fatalf("third customer: %v", err)
	}
	if second.CustomerCode == third.CustomerCode {
		t.Errorf("customer codes must be unique: both %q", second.CustomerCode)
	}
}

func TestFarmerValidation(t *testing.T) {
	svc := setupPartnerTest(t)

	if _, err := svc.CreateFarmer(FarmerRequest{Name: "X", FarmerType: "conglomerate"}, "tester"); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("bad farmer type: expected validation error, got %v", err)
	}
	if _, err := svc.CreateFarmer(FarmerRequest{Name: "X", TotalFarmArea: dec("-1")}, "tester"); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("negative area: expected validation error, got %v", err)
	}
	if _, err := svc.GetFarmer("missing"); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("missing farmer: expected not found error, got %v", err)
	}
}

func TestUpdateAndDeleteFarmer(t *testing.T) {
	svc := setupPartnerTest(t)

	farmer, err := svc.CreateFarmer(FarmerRequest{Name: "Hoa Loc farm"}, "tester")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.UpdateFarmer(farmer.ID, FarmerRequest{
		Name: "Hoa Loc farm JSC", FarmerType: "enterprise", FarmingRegion: "Tien Giang",
	}, "tester")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Hoa Loc farm JSC" || updated.FarmerType != "enterprise" {
		t.Errorf("update not applied: %+v", updated)
	}
	if updated.FarmerCode != farmer.FarmerCode {
		t.Errorf("farmer code must never change: %q -> %q", farmer.FarmerCode, updated.FarmerCode)
	}

	if err := svc.DeleteFarmer(farmer.ID, "tester"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetFarmer(farmer.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("deleted farmer still loads: %v", err)
	}

	// Deletion must not free the code for the next farmer.
	next, err := svc.CreateFarmer(FarmerRequest{Name: "Cai Be orchard"}, "tester")
	if err != nil {
		t.Fatalf("create after delete: %v", err)
	}
	if next.FarmerCode == farmer.FarmerCode {
		t.Errorf("farmer code %q was reassigned after deletion", farmer.FarmerCode)
	}
	if next.FarmerCode != "F-000002" {
		t.Errorf("farmer code = %q, want F-000002", next.FarmerCode)
	}
}

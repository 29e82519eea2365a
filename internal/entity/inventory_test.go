package entity

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestMovementDirection(t *testing.T) {
	adds := []string{MovementInbound, MovementAdjustment}
	for _, movementType := range adds {
		dir, err := MovementDirection(movementType)
		if err != nil || dir != 1 {
			t.Errorf("MovementDirection(%q) = %d, %v; want 1, nil", movementType, dir, err)
		}
	}

	removes := []string{MovementOutbound, MovementTransfer, MovementDamaged, MovementExpired}
	for _, movementType := range removes {
		dir, err := MovementDirection(movementType)
		if err != nil || dir != -1 {
			t.Errorf("MovementDirection(%q) = %d, %v; want -1, nil", movementType, dir, err)
		}
	}

	if _, err := MovementDirection("teleport"); err == nil {
		t.Error("expected error for unknown movement type")
	}
}

func TestStockTakingDetailComputeVariance(t *testing.T) {
	detail := StockTakingDetail{
		SystemQuantity: decimal.NewFromInt(100),
		ActualQuantity: decimal.NewFromInt(97),
	}
	detail.ComputeVariance()
	if !detail.Variance.Equal(decimal.NewFromInt(-3)) {
		t.Errorf("Variance = %s, want -3", detail.Variance)
	}

	detail.ActualQuantity = decimal.NewFromInt(104)
	detail.ComputeVariance()
	if !detail.Variance.Equal(decimal.NewFromInt(4)) {
		t.Errorf("Variance = %s, want 4", detail.Variance)
	}
}

func TestInventoryStockHelpers(t *testing.T) {
	stock := InventoryStock{
		Quantity:         decimal.NewFromInt(50),
		ReservedQuantity: decimal.NewFromInt(20),
		MinStockLevel:    decimal.NewFromInt(10),
	}
	if !stock.AvailableQuantity().Equal(decimal.NewFromInt(30)) {
		t.Errorf("AvailableQuantity = %s, want 30", stock.AvailableQuantity())
	}
	if stock.IsLowStock() {
		t.Error("stock at 50 with min 10 should not be low")
	}

	stock.Quantity = decimal.NewFromInt(10)
	if !stock.IsLowStock() {
		t.Error("stock at the minimum level should be low")
	}
}

package entity

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestOrderNumberPrefix(t *testing.T) {
	cases := map[string]string{
		OrderTypePurchase: "PO",
		OrderTypeSale:     "SO",
		"unknown":         "OR",
	}
	for orderType, want := range cases {
		if got := OrderNumberPrefix(orderType); got != want {
			t.Errorf("OrderNumberPrefix(%q) = %q, want %q", orderType, got, want)
		}
	}
}

func TestCanTransitionOrderStatus(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{"one step forward", OrderDraft, OrderConfirmed, true},
		{"several steps forward", OrderDraft, OrderShipped, true},
		{"full chain jump", OrderConfirmed, OrderCompleted, true},
		{"backward", OrderShipped, OrderConfirmed, false},
		{"self transition", OrderProcessing, OrderProcessing, false},
		{"cancel from draft", OrderDraft, OrderCancelled, true},
		{"cancel from in_transit", OrderInTransit, OrderCancelled, true},
		{"return from delivered", OrderDelivered, OrderReturned, true},
		{"out of completed", OrderCompleted, OrderCancelled, false},
		{"out of cancelled", OrderCancelled, OrderDraft, false},
		{"out of returned", OrderReturned, OrderConfirmed, false},
		{"into unknown", OrderDraft, "archived", false},
		{"from unknown", "archived", OrderConfirmed, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransitionOrderStatus(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransitionOrderStatus(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestIsTerminalOrderStatus(t *testing.T) {
	for _, status := range []string{OrderCompleted, OrderCancelled, OrderReturned} {
		if !IsTerminalOrderStatus(status) {
			t.Errorf("expected %q to be terminal", status)
		}
	}
	for _, status := range []string{OrderDraft, OrderConfirmed, OrderDelivered} {
		if IsTerminalOrderStatus(status) {
			t.Errorf("expected %q not to be terminal", status)
		}
	}
}

func TestOrderDetailComputeTotal(t *testing.T) {
	detail := OrderDetail{
		Quantity:  decimal.NewFromInt(10),
		UnitPrice: decimal.NewFromInt(2000),
	}
	detail.ComputeTotal()
	if !detail.TotalPrice.Equal(decimal.NewFromInt(20000)) {
		t.Errorf("TotalPrice = %s, want 20000", detail.TotalPrice)
	}

	detail.Quantity = decimal.RequireFromString("2.5")
	detail.UnitPrice = decimal.RequireFromString("1000.40")
	detail.ComputeTotal()
	if !detail.TotalPrice.Equal(decimal.RequireFromString("2501")) {
		t.Errorf("TotalPrice = %s, want 2501", detail.TotalPrice)
	}
}

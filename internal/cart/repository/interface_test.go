package repository

import "testing"

func TestCartTotals(t *testing.T) {
	cart := ShoppingCart{Items: []CartItem{
		{SKU: "A", Quantity: 2, UnitPriceCents: 1250, WeightGrams: 300},
		{SKU: "B", Quantity: 1, UnitPriceCents: 499, WeightGrams: 1000},
	}}

	if got := cart.SubtotalCents(); got != 2999 {
		t.Fatalf("expected subtotal 2999, got %d", got)
	}
	if got := cart.ItemCount(); got != 3 {
		t.Fatalf("expected 3 items, got %d", got)
	}
	if got := cart.WeightGrams(); got != 1600 {
		t.Fatalf("expected 1600g, got %d", got)
	}
}

func TestCartOwnedBy(t *testing.T) {
	owner := int64(1)
	cart := ShoppingCart{CustomerID: &owner}

	if !cart.OwnedBy(1) {
		t.Fatal("expected cart to be owned by customer 1")
	}
	if cart.OwnedBy(2) {
		t.Fatal("cart must not be owned by customer 2")
	}
	if (ShoppingCart{}).OwnedBy(1) {
		t.Fatal("guest cart must not be owned by anyone")
	}
}

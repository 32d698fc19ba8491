package customer

import (
	"testing"

	"storefront_backend/internal/customer/repository"
)

func TestNewAnonymousNormalizesAddress(t *testing.T) {
	c := NewAnonymous(3, repository.Address{PostalCode: " H2X 1Y4 ", CountryCode: "ca"})

	if !c.Anonymous || c.ID != 0 {
		t.Fatalf("expected a transient anonymous customer, got %+v", c)
	}
	if c.StoreID != 3 {
		t.Fatalf("expected store 3, got %d", c.StoreID)
	}
	if c.Delivery.PostalCode != "H2X 1Y4" || c.Delivery.CountryCode != "CA" {
		t.Fatalf("unexpected delivery: %+v", c.Delivery)
	}
}

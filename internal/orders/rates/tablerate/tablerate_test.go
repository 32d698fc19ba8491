package tablerate

import (
	"context"
	"testing"

	"storefront_backend/internal/orders/domain"
)

type fakeRates struct {
	rates []Rate
}

func (f fakeRates) ListRates(context.Context, int64, string, string) ([]Rate, error) {
	return f.rates, nil
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestPrice(t *testing.T) {
	rate := Rate{BaseCents: 1000, PerItemCents: 100, PerKgCents: 50}

	if got := Price(rate, 3, 1001); got != 1400 {
		t.Fatalf("expected 1400, got %d", got)
	}
	if got := Price(rate, 0, 0); got != 1000 {
		t.Fatalf("expected base price, got %d", got)
	}
}

func TestQuotePrefersCountrySpecificRate(t *testing.T) {
	module := New(fakeRates{rates: []Rate{
		{OptionCode: "standard", BaseCents: 1000, EstimatedDays: intPtr(5)},
		{OptionCode: "standard", CountryCode: strPtr("FR"), BaseCents: 3000, EstimatedDays: intPtr(8)},
		{OptionCode: "express", BaseCents: 2500},
	}})

	options, err := module.Quote(context.Background(), domain.RateRequest{Delivery: domain.Delivery{CountryCode: "FR"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(options) != 2 {
		t.Fatalf("expected 2 options, got %d", len(options))
	}
	for _, opt := range options {
		if opt.OptionCode == "standard" && (opt.PriceCents != 3000 || opt.EstimatedDays != 8) {
			t.Fatalf("expected FR standard rate, got %+v", opt)
		}
	}
}

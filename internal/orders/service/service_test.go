package service

import (
	"context"
	"errors"
	"io"
	"testing"

	cartrepo "storefront_backend/internal/cart/repository"
	customerrepo "storefront_backend/internal/customer/repository"
	"storefront_backend/internal/orders/domain"
	"storefront_backend/internal/reference"
	storerepo "storefront_backend/internal/store/repository"
	"storefront_backend/platform/logger"
)

type stubModule struct {
	code    string
	options []domain.ShippingOption
	err     error
	lastReq domain.RateRequest
}

func (m *stubModule) Code() string { return m.code }

func (m *stubModule) Quote(_ context.Context, req domain.RateRequest) ([]domain.ShippingOption, error) {
	m.lastReq = req
	return m.options, m.err
}

var (
	testStore = &storerepo.MerchantStore{ID: 1, Code: "DEFAULT", Name: "Default store", CountryCode: "CA", Currency: "CAD", HandlingFeeCents: 200}
	testLang  = &storerepo.Language{ID: 1, Code: "en"}
	testCart  = cartrepo.ShoppingCart{ID: 5, Code: "abc", Items: []cartrepo.CartItem{
		{SKU: "A", Quantity: 2, UnitPriceCents: 1500, WeightGrams: 500},
	}}
)

func newTestService(modules ...domain.ShippingModule) *Service {
	return New(modules, reference.NewService(), logger.NewWithWriter("production", io.Discard))
}

func TestGetShippingQuoteSelectsCheapestOption(t *testing.T) {
	table := &stubModule{code: "weightBased", options: []domain.ShippingOption{
		{OptionCode: "express", PriceCents: 2800},
		{OptionCode: "standard", PriceCents: 1200},
	}}
	remote := &stubModule{code: "remote", options: []domain.ShippingOption{
		{OptionCode: "ground", PriceCents: 1500},
	}}
	svc := newTestService(table, remote)

	quote, err := svc.GetShippingQuote(context.Background(), customerrepo.Customer{Delivery: customerrepo.Address{CountryCode: "FR", PostalCode: "75001"}}, testCart, testStore, testLang)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quote.Options) != 3 {
		t.Fatalf("expected 3 options, got %d", len(quote.Options))
	}
	if quote.SelectedOption == nil || quote.SelectedOption.OptionID != "weightBased.standard" {
		t.Fatalf("expected weightBased.standard selected, got %+v", quote.SelectedOption)
	}
	if quote.ShippingModuleCode != "weightBased" {
		t.Fatalf("expected weightBased module, got %s", quote.ShippingModuleCode)
	}
	if quote.Delivery.CountryCode != "FR" {
		t.Fatalf("expected FR delivery, got %s", quote.Delivery.CountryCode)
	}
	if table.lastReq.ItemCount != 2 || table.lastReq.WeightGrams != 1000 || table.lastReq.SubtotalCents != 3000 {
		t.Fatalf("unexpected rate request: %+v", table.lastReq)
	}
}

func TestGetShippingQuoteFallsBackToStoreCountry(t *testing.T) {
	svc := newTestService(&stubModule{code: "weightBased", options: []domain.ShippingOption{{PriceCents: 100}}})

	quote, err := svc.GetShippingQuote(context.Background(), customerrepo.Customer{Delivery: customerrepo.Address{CountryCode: "ZZ"}}, testCart, testStore, testLang)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Delivery.CountryCode != "CA" {
		t.Fatalf("expected store country CA, got %q", quote.Delivery.CountryCode)
	}
}

func TestGetShippingQuoteSkipsFailingModule(t *testing.T) {
	svc := newTestService(
		&stubModule{code: "remote", err: errors.New("carrier down")},
		&stubModule{code: "weightBased", options: []domain.ShippingOption{{OptionCode: "standard", PriceCents: 900}}},
	)

	quote, err := svc.GetShippingQuote(context.Background(), customerrepo.Customer{}, testCart, testStore, testLang)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quote.Options) != 1 {
		t.Fatalf("expected 1 option, got %d", len(quote.Options))
	}
}

func TestGetShippingQuoteFailsWhenEveryModuleFails(t *testing.T) {
	svc := newTestService(&stubModule{code: "remote", err: errors.New("carrier down")})

	if _, err := svc.GetShippingQuote(context.Background(), customerrepo.Customer{}, testCart, testStore, testLang); err == nil {
		t.Fatal("expected error when every module fails")
	}
}

func TestGetShippingSummaryAppliesFreeShipping(t *testing.T) {
	threshold := int64(2500)
	store := *testStore
	store.FreeShippingThresholdCents = &threshold
	svc := newTestService(&stubModule{code: "weightBased", options: []domain.ShippingOption{{OptionCode: "standard", PriceCents: 900}}})
	ctx := context.Background()

	quote, err := svc.GetShippingQuote(ctx, customerrepo.Customer{}, testCart, &store, testLang)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !quote.FreeShipping {
		t.Fatal("expected free shipping above threshold")
	}

	summary, err := svc.GetShippingSummary(ctx, quote, &store, testLang)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.ShippingCents != 0 || summary.HandlingCents != 200 || summary.ShippingOption != "weightBased.standard" {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestGetShippingSummaryWithoutSelectionIsNil(t *testing.T) {
	svc := newTestService()

	quote, err := svc.GetShippingQuote(context.Background(), customerrepo.Customer{}, cartrepo.ShoppingCart{}, testStore, testLang)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	summary, err := svc.GetShippingSummary(context.Background(), quote, testStore, testLang)
	if err != nil || summary != nil {
		t.Fatalf("expected nil summary, got %+v (%v)", summary, err)
	}
}

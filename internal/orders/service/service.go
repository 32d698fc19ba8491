// Package service computes shipping quotes for a cart by querying every
// registered shipping module.
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	cartrepo "storefront_backend/internal/cart/repository"
	customerrepo "storefront_backend/internal/customer/repository"
	"storefront_backend/internal/orders/domain"
	"storefront_backend/internal/reference"
	storerepo "storefront_backend/internal/store/repository"
	"storefront_backend/platform/apperr"
	"storefront_backend/platform/logger"
)

const maxConcurrentModules = 4

// CountryReader resolves ISO country codes.
type CountryReader interface {
	GetByCode(code string, langCode string) (reference.Country, bool)
}

// Service is the order-processing shipping collaborator.
type Service struct {
	modules   []domain.ShippingModule
	countries CountryReader
	log       *logger.Logger
}

// New creates a shipping quote service over the given modules.
func New(modules []domain.ShippingModule, countries CountryReader, log *logger.Logger) *Service {
	return &Service{modules: modules, countries: countries, log: log}
}

// GetShippingQuote prices the cart with every module and selects the cheapest
// option. A module that fails is skipped; the quote fails only when every
// module failed.
func (s *Service) GetShippingQuote(ctx context.Context, customer customerrepo.Customer, cart cartrepo.ShoppingCart, store *storerepo.MerchantStore, lang *storerepo.Language) (*domain.ShippingQuote, error) {
	if store == nil || lang == nil {
		return nil, apperr.Validation("merchant store and language are required")
	}

	quote := &domain.ShippingQuote{
		Delivery:                   s.resolveDelivery(customer.Delivery, store, lang),
		HandlingFeeCents:           store.HandlingFeeCents,
		FreeShippingThresholdCents: store.FreeShippingThresholdCents,
		OrderTotalCents:            cart.SubtotalCents(),
		Options:                    []domain.ShippingOption{},
	}
	if len(cart.Items) == 0 || len(s.modules) == 0 {
		return quote, nil
	}

	req := domain.RateRequest{
		StoreID:       store.ID,
		StoreCode:     store.Code,
		Currency:      store.Currency,
		Delivery:      quote.Delivery,
		ItemCount:     cart.ItemCount(),
		WeightGrams:   cart.WeightGrams(),
		SubtotalCents: quote.OrderTotalCents,
	}

	options, err := s.quoteModules(ctx, req)
	if err != nil {
		return nil, err
	}

	sort.Slice(options, func(i, j int) bool {
		if options[i].PriceCents != options[j].PriceCents {
			return options[i].PriceCents < options[j].PriceCents
		}
		return options[i].OptionID < options[j].OptionID
	})
	quote.Options = options
	if len(options) > 0 {
		selected := options[0]
		quote.SelectedOption = &selected
		quote.ShippingModuleCode = selected.ShippingModuleCode
	}
	if t := store.FreeShippingThresholdCents; t != nil && quote.OrderTotalCents >= *t {
		quote.FreeShipping = true
	}
	return quote, nil
}

// GetShippingSummary reduces a quote to its selected option. It returns nil
// when the quote has no selectable option.
func (s *Service) GetShippingSummary(_ context.Context, quote *domain.ShippingQuote, store *storerepo.MerchantStore, _ *storerepo.Language) (*domain.ShippingSummary, error) {
	if quote == nil || quote.SelectedOption == nil {
		return nil, nil
	}
	if store == nil {
		return nil, apperr.Validation("merchant store is required")
	}

	summary := &domain.ShippingSummary{
		ShippingCents:  quote.SelectedOption.PriceCents,
		HandlingCents:  quote.HandlingFeeCents,
		ShippingModule: quote.SelectedOption.ShippingModuleCode,
		ShippingOption: quote.SelectedOption.OptionID,
		FreeShipping:   quote.FreeShipping,
		Delivery:       quote.Delivery,
	}
	if summary.FreeShipping {
		summary.ShippingCents = 0
	}
	return summary, nil
}

func (s *Service) quoteModules(ctx context.Context, req domain.RateRequest) ([]domain.ShippingOption, error) {
	var (
		mu       sync.Mutex
		options  []domain.ShippingOption
		failures []error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentModules)
	for _, module := range s.modules {
		module := module
		g.Go(func() error {
			moduleOptions, err := module.Quote(gctx, req)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.log.Warn("shipping module failed", "module", module.Code(), "error", err)
				failures = append(failures, fmt.Errorf("%s: %w", module.Code(), err))
				return nil
			}
			for _, opt := range moduleOptions {
				opt.ShippingModuleCode = module.Code()
				if opt.OptionID == "" {
					opt.OptionID = optionID(module.Code(), opt.OptionCode)
				}
				options = append(options, opt)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(failures) == len(s.modules) {
		return nil, fmt.Errorf("every shipping module failed: %w", errors.Join(failures...))
	}
	if options == nil {
		options = []domain.ShippingOption{}
	}
	return options, nil
}

// resolveDelivery falls back to the store country when the customer's
// country is blank or unrecognized.
func (s *Service) resolveDelivery(addr customerrepo.Address, store *storerepo.MerchantStore, lang *storerepo.Language) domain.Delivery {
	delivery := domain.Delivery{
		PostalCode:    strings.TrimSpace(addr.PostalCode),
		City:          addr.City,
		StateProvince: addr.StateProvince,
	}

	country, ok := s.countries.GetByCode(addr.CountryCode, lang.Code)
	if !ok {
		country, ok = s.countries.GetByCode(store.CountryCode, lang.Code)
	}
	if ok {
		delivery.CountryCode = country.Code
		delivery.CountryName = country.Name
	} else {
		delivery.CountryCode = store.CountryCode
	}
	return delivery
}

func optionID(moduleCode, optionCode string) string {
	if optionCode == "" {
		return moduleCode
	}
	return moduleCode + "." + optionCode
}

// Package pricing formats monetary amounts for display in a store's currency.
package pricing

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	storerepo "storefront_backend/internal/store/repository"
)

// Service formats amounts held in minor units (cents).
type Service struct{}

// NewService creates a pricing service.
func NewService() *Service {
	return &Service{}
}

// DisplayAmount formats cents in the store currency using the store's
// default language and country conventions.
func (s *Service) DisplayAmount(cents int64, store *storerepo.MerchantStore) (string, error) {
	if store == nil {
		return "", fmt.Errorf("display amount: store is required")
	}
	unit, err := currency.ParseISO(store.Currency)
	if err != nil {
		return "", fmt.Errorf("display amount: currency %q: %w", store.Currency, err)
	}

	printer := message.NewPrinter(storeLocale(store))
	amount := unit.Amount(float64(cents) / 100)
	return printer.Sprint(currency.Symbol(amount)), nil
}

func storeLocale(store *storerepo.MerchantStore) language.Tag {
	base, err := language.ParseBase(store.DefaultLanguage)
	if err != nil {
		return language.English
	}
	region, err := language.ParseRegion(store.CountryCode)
	if err != nil {
		tag, _ := language.Compose(base)
		return tag
	}
	tag, err := language.Compose(base, region)
	if err != nil {
		return language.English
	}
	return tag
}

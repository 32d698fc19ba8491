package repository

import "context"

// MerchantStore is the tenant every catalog, cart and customer belongs to.
type MerchantStore struct {
	ID                         int64  `db:"id"`
	Code                       string `db:"code"`
	Name                       string `db:"name"`
	CountryCode                string `db:"country_code"`
	DefaultLanguage            string `db:"default_language"`
	Currency                   string `db:"currency"`
	HandlingFeeCents           int64  `db:"handling_fee_cents"`
	FreeShippingThresholdCents *int64 `db:"free_shipping_threshold_cents"`
}

// Equal reports whether both values denote the same store.
func (s MerchantStore) Equal(other MerchantStore) bool {
	return s.ID == other.ID
}

// Language is a supported content language.
type Language struct {
	ID   int    `db:"id"`
	Code string `db:"code"`
}

// Repository defines store and language lookups.
type Repository interface {
	GetStoreByCode(ctx context.Context, code string) (MerchantStore, error)
	GetLanguageByCode(ctx context.Context, code string) (Language, error)
}

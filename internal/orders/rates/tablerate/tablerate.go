// Package tablerate prices carts from per-store rate rows.
package tablerate

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"storefront_backend/internal/orders/domain"
)

// ModuleCode identifies the table-rate shipping module.
const ModuleCode = "weightBased"

// Rate is one option row. A nil CountryCode applies to every destination.
type Rate struct {
	OptionCode    string
	CountryCode   *string
	BaseCents     int64
	PerItemCents  int64
	PerKgCents    int64
	EstimatedDays *int
}

// RateStore lists the rate rows that apply to a destination.
type RateStore interface {
	ListRates(ctx context.Context, storeID int64, moduleCode string, countryCode string) ([]Rate, error)
}

// Repo reads shipping_rates.
type Repo struct {
	pool *pgxpool.Pool
}

// NewRepo creates a rate repository.
func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ RateStore = (*Repo)(nil)

// ListRates returns country-specific rows before catch-all rows.
func (r *Repo) ListRates(ctx context.Context, storeID int64, moduleCode string, countryCode string) ([]Rate, error) {
	query := `
		SELECT option_code, country_code, base_cents, per_item_cents, per_kg_cents, estimated_days
		FROM shipping_rates
		WHERE store_id = $1 AND module_code = $2 AND (country_code = $3 OR country_code IS NULL)
		ORDER BY option_code ASC, country_code NULLS LAST`

	rows, err := r.pool.Query(ctx, query, storeID, moduleCode, countryCode)
	if err != nil {
		return nil, fmt.Errorf("list shipping rates: %w", err)
	}
	defer rows.Close()

	rates := make([]Rate, 0)
	for rows.Next() {
		var rate Rate
		if err := rows.Scan(&rate.OptionCode, &rate.CountryCode, &rate.BaseCents, &rate.PerItemCents, &rate.PerKgCents, &rate.EstimatedDays); err != nil {
			return nil, fmt.Errorf("scan shipping rate: %w", err)
		}
		rates = append(rates, rate)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate shipping rates: %w", rows.Err())
	}
	return rates, nil
}

// Module is the table-rate shipping module.
type Module struct {
	rates RateStore
}

// New creates the table-rate module.
func New(rates RateStore) *Module {
	return &Module{rates: rates}
}

var _ domain.ShippingModule = (*Module)(nil)

// Code returns the module code.
func (m *Module) Code() string {
	return ModuleCode
}

// Quote prices one option per option code. A country-specific row overrides
// the catch-all row for the same option.
func (m *Module) Quote(ctx context.Context, req domain.RateRequest) ([]domain.ShippingOption, error) {
	rates, err := m.rates.ListRates(ctx, req.StoreID, ModuleCode, req.Delivery.CountryCode)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(rates))
	options := make([]domain.ShippingOption, 0, len(rates))
	for _, rate := range pickRates(rates, req.Delivery.CountryCode) {
		if seen[rate.OptionCode] {
			continue
		}
		seen[rate.OptionCode] = true

		opt := domain.ShippingOption{
			OptionCode: rate.OptionCode,
			PriceCents: Price(rate, req.ItemCount, req.WeightGrams),
		}
		if rate.EstimatedDays != nil {
			opt.EstimatedDays = *rate.EstimatedDays
		}
		options = append(options, opt)
	}
	return options, nil
}

// pickRates orders rows so that a row for country precedes catch-all rows.
func pickRates(rates []Rate, country string) []Rate {
	specific := make([]Rate, 0, len(rates))
	general := make([]Rate, 0, len(rates))
	for _, rate := range rates {
		if rate.CountryCode != nil && *rate.CountryCode == country {
			specific = append(specific, rate)
		} else if rate.CountryCode == nil {
			general = append(general, rate)
		}
	}
	return append(specific, general...)
}

// Price is base + per item + per started kilogram.
func Price(rate Rate, itemCount int, weightGrams int) int64 {
	kilos := int64((weightGrams + 999) / 1000)
	return rate.BaseCents + rate.PerItemCents*int64(itemCount) + rate.PerKgCents*kilos
}

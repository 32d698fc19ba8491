package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront_backend/platform/apperr"
)

// Repo implements the store repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new store repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

// GetStoreByCode retrieves a merchant store by its code.
func (r *Repo) GetStoreByCode(ctx context.Context, code string) (MerchantStore, error) {
	query := `
		SELECT id, code, name, country_code, default_language, currency,
			handling_fee_cents, free_shipping_threshold_cents
		FROM merchant_stores
		WHERE code = $1`

	var s MerchantStore
	if err := r.pool.QueryRow(ctx, query, code).Scan(
		&s.ID, &s.Code, &s.Name, &s.CountryCode, &s.DefaultLanguage, &s.Currency,
		&s.HandlingFeeCents, &s.FreeShippingThresholdCents,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return MerchantStore{}, apperr.NotFoundf("store [%s] not found", code)
		}
		return MerchantStore{}, fmt.Errorf("get store by code: %w", err)
	}
	return s, nil
}

// GetLanguageByCode retrieves a language by its code.
func (r *Repo) GetLanguageByCode(ctx context.Context, code string) (Language, error) {
	var l Language
	if err := r.pool.QueryRow(ctx, `SELECT id, code FROM languages WHERE code = $1`, code).Scan(&l.ID, &l.Code); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Language{}, apperr.NotFoundf("language [%s] not found", code)
		}
		return Language{}, fmt.Errorf("get language by code: %w", err)
	}
	return l, nil
}

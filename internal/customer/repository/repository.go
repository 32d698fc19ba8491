package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront_backend/platform/apperr"
)

// Repo implements the customer repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new customer repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

// GetByNick retrieves a customer of the store by login name.
func (r *Repo) GetByNick(ctx context.Context, nick string, storeID int64) (Customer, error) {
	query := `
		SELECT id, store_id, nick, email, password_hash, roles,
			COALESCE(delivery_postal_code, ''), COALESCE(delivery_country_code, ''),
			COALESCE(delivery_city, ''), COALESCE(delivery_state, ''), created_at
		FROM customers
		WHERE store_id = $1 AND nick = $2`

	var c Customer
	if err := r.pool.QueryRow(ctx, query, storeID, nick).Scan(
		&c.ID, &c.StoreID, &c.Nick, &c.Email, &c.PasswordHash, &c.Roles,
		&c.Delivery.PostalCode, &c.Delivery.CountryCode, &c.Delivery.City, &c.Delivery.StateProvince, &c.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Customer{}, apperr.NotFoundf("customer [%s] not found", nick)
		}
		return Customer{}, fmt.Errorf("get customer by nick: %w", err)
	}
	return c, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront_backend/platform/apperr"
)

// Repo implements the cart repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new cart repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

// GetCartByCode retrieves a store's cart with its items.
func (r *Repo) GetCartByCode(ctx context.Context, code string, storeID int64) (ShoppingCart, error) {
	query := `
		SELECT id, code, store_id, customer_id, created_at
		FROM shopping_carts
		WHERE code = $1 AND store_id = $2`

	var cart ShoppingCart
	if err := r.pool.QueryRow(ctx, query, code, storeID).Scan(
		&cart.ID, &cart.Code, &cart.StoreID, &cart.CustomerID, &cart.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ShoppingCart{}, apperr.NotFoundf("Cart code %s does not exist", code)
		}
		return ShoppingCart{}, fmt.Errorf("get cart by code: %w", err)
	}

	items, err := r.listItems(ctx, cart.ID)
	if err != nil {
		return ShoppingCart{}, err
	}
	cart.Items = items
	return cart, nil
}

func (r *Repo) listItems(ctx context.Context, cartID int64) ([]CartItem, error) {
	query := `
		SELECT sku, name, quantity, unit_price_cents, weight_grams
		FROM shopping_cart_items
		WHERE cart_id = $1
		ORDER BY id`

	rows, err := r.pool.Query(ctx, query, cartID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()

	items := make([]CartItem, 0)
	for rows.Next() {
		var item CartItem
		if err := rows.Scan(&item.SKU, &item.Name, &item.Quantity, &item.UnitPriceCents, &item.WeightGrams); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, item)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate cart items: %w", rows.Err())
	}
	return items, nil
}

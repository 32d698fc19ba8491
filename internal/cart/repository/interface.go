package repository

import (
	"context"
	"time"
)

// ShoppingCart is a store-scoped cart. CustomerID is nil for guest carts.
type ShoppingCart struct {
	ID         int64
	Code       string
	StoreID    int64
	CustomerID *int64
	Items      []CartItem
	CreatedAt  time.Time
}

// CartItem is one cart line.
type CartItem struct {
	SKU            string
	Name           string
	Quantity       int
	UnitPriceCents int64
	WeightGrams    int
}

// SubtotalCents returns the sum of line totals.
func (c ShoppingCart) SubtotalCents() int64 {
	var total int64
	for _, item := range c.Items {
		total += int64(item.Quantity) * item.UnitPriceCents
	}
	return total
}

// ItemCount returns the total quantity across lines.
func (c ShoppingCart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// WeightGrams returns the total shipping weight.
func (c ShoppingCart) WeightGrams() int {
	weight := 0
	for _, item := range c.Items {
		weight += item.Quantity * item.WeightGrams
	}
	return weight
}

// OwnedBy reports whether the cart belongs to the given customer.
func (c ShoppingCart) OwnedBy(customerID int64) bool {
	return c.CustomerID != nil && *c.CustomerID == customerID
}

// Repository defines cart lookups.
type Repository interface {
	GetCartByCode(ctx context.Context, code string, storeID int64) (ShoppingCart, error)
}

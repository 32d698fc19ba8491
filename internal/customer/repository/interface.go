package repository

import (
	"context"
	"time"
)

// Address is a delivery destination.
type Address struct {
	PostalCode    string
	CountryCode   string
	City          string
	StateProvince string
}

// Customer is a storefront account, or a transient guest when Anonymous is set.
type Customer struct {
	ID           int64
	StoreID      int64
	Nick         string
	Email        string
	PasswordHash string
	Roles        []string
	Anonymous    bool
	Delivery     Address
	CreatedAt    time.Time
}

// Repository defines customer lookups.
type Repository interface {
	GetByNick(ctx context.Context, nick string, storeID int64) (Customer, error)
}

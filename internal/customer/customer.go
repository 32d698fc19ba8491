// Package customer owns storefront customer accounts and the transient guest
// customer used for anonymous shipping quotes.
package customer

import (
	"strings"

	"storefront_backend/internal/customer/repository"
)

// NewAnonymous returns a non-persisted customer carrying only a delivery
// address. The country code is upper-cased; callers resolve fallbacks.
func NewAnonymous(storeID int64, delivery repository.Address) repository.Customer {
	delivery.PostalCode = strings.TrimSpace(delivery.PostalCode)
	delivery.CountryCode = strings.ToUpper(strings.TrimSpace(delivery.CountryCode))
	return repository.Customer{
		StoreID:   storeID,
		Anonymous: true,
		Delivery:  delivery,
	}
}

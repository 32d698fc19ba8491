package transport

import "storefront_backend/internal/orders/domain"

// AddressLocation is the guest delivery address.
type AddressLocation struct {
	PostalCode  string `json:"postalCode" validate:"omitempty,max=20"`
	CountryCode string `json:"countryCode" validate:"omitempty,countrycode"`
}

// ReadableShippingSummary is the priced, localized shipping summary.
type ReadableShippingSummary struct {
	Shipping               int64                   `json:"shipping"`
	Handling               int64                   `json:"handling"`
	ShippingText           string                  `json:"shippingText"`
	HandlingText           string                  `json:"handlingText"`
	ShippingModule         string                  `json:"shippingModule"`
	ShippingOption         string                  `json:"shippingOption"`
	FreeShipping           bool                    `json:"freeShipping"`
	TaxOnShipping          bool                    `json:"taxOnShipping"`
	Delivery               domain.Delivery         `json:"delivery"`
	SelectedShippingOption *domain.ShippingOption  `json:"selectedShippingOption,omitempty"`
	ShippingOptions        []domain.ShippingOption `json:"shippingOptions"`
}

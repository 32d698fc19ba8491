// Package domain defines shipping quote values shared by the quoting
// service and the shipping modules that price a cart.
package domain

import "context"

// Delivery is the resolved shipping destination.
type Delivery struct {
	PostalCode    string `json:"postalCode"`
	CountryCode   string `json:"countryCode"`
	CountryName   string `json:"countryName,omitempty"`
	City          string `json:"city,omitempty"`
	StateProvince string `json:"stateProvince,omitempty"`
}

// ShippingOption is one priced way of shipping the cart.
// Description, Note and OptionName are display fields filled in by callers.
type ShippingOption struct {
	ShippingModuleCode string `json:"shippingModuleCode"`
	OptionCode         string `json:"optionCode,omitempty"`
	OptionID           string `json:"optionId"`
	PriceCents         int64  `json:"optionPriceCents"`
	PriceText          string `json:"optionPriceText,omitempty"`
	Description        string `json:"description,omitempty"`
	Note               string `json:"note"`
	OptionName         string `json:"optionName,omitempty"`
	EstimatedDays      int    `json:"estimatedNumberOfDays,omitempty"`
}

// ShippingQuote is the full set of options for a cart and destination.
type ShippingQuote struct {
	ShippingModuleCode         string           `json:"shippingModuleCode"`
	Options                    []ShippingOption `json:"options"`
	SelectedOption             *ShippingOption  `json:"selectedOption,omitempty"`
	Delivery                   Delivery         `json:"delivery"`
	HandlingFeeCents           int64            `json:"handlingFeeCents"`
	FreeShipping               bool             `json:"freeShipping"`
	FreeShippingThresholdCents *int64           `json:"freeShippingThresholdCents,omitempty"`
	OrderTotalCents            int64            `json:"orderTotalCents"`
}

// ShippingSummary is the selected option reduced to the amounts an order carries.
type ShippingSummary struct {
	ShippingCents  int64    `json:"shippingCents"`
	HandlingCents  int64    `json:"handlingCents"`
	ShippingModule string   `json:"shippingModule"`
	ShippingOption string   `json:"shippingOption"`
	FreeShipping   bool     `json:"freeShipping"`
	TaxOnShipping  bool     `json:"taxOnShipping"`
	Delivery       Delivery `json:"delivery"`
}

// RateRequest is what a shipping module needs to price a cart.
type RateRequest struct {
	StoreID       int64    `json:"storeId"`
	StoreCode     string   `json:"storeCode"`
	Currency      string   `json:"currency"`
	Delivery      Delivery `json:"delivery"`
	ItemCount     int      `json:"itemCount"`
	WeightGrams   int      `json:"weightGrams"`
	SubtotalCents int64    `json:"subtotalCents"`
}

// ShippingModule prices a cart for one carrier or rate table.
type ShippingModule interface {
	Code() string
	Quote(ctx context.Context, req RateRequest) ([]ShippingOption, error)
}

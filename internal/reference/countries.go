// Package reference provides country reference data for delivery addresses.
package reference

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"storefront_backend/platform/phone"
)

// Country is a recognized delivery country.
type Country struct {
	Code        string
	Name        string
	CallingCode int
}

// Service resolves ISO country codes.
type Service struct{}

// NewService creates a country reference service.
func NewService() *Service {
	return &Service{}
}

// GetByCode returns the country for an ISO 3166-1 alpha-2 code, with its name
// in the given language. The bool is false for unrecognized codes.
func (s *Service) GetByCode(code string, langCode string) (Country, bool) {
	region, ok := phone.NormalizeRegion(code)
	if !ok {
		return Country{}, false
	}

	country := Country{Code: region, CallingCode: phone.CallingCode(region)}
	if r, err := language.ParseRegion(region); err == nil {
		tag, err := language.Parse(langCode)
		if err != nil {
			tag = language.English
		}
		country.Name = display.Regions(tag).Name(r)
	}
	return country, true
}

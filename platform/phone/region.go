// Package phone wraps libphonenumber's region metadata.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const unknownRegion = "ZZ"

// NormalizeRegion upper-cases an ISO 3166-1 alpha-2 code and reports whether
// libphonenumber knows the region. "ZZ" (unknown region) is never supported.
func NormalizeRegion(code string) (string, bool) {
	region := strings.ToUpper(strings.TrimSpace(code))
	if len(region) != 2 || region == unknownRegion {
		return region, false
	}
	return region, phonenumbers.GetSupportedRegions()[region]
}

// CallingCode returns the international dialing prefix of a supported region,
// or 0 when the region is unknown.
func CallingCode(region string) int {
	return phonenumbers.GetCountryCodeForRegion(region)
}

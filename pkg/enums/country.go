package enums

import "fmt"

// Country enumerates the destinations the storefront ships to.
type Country string

const (
	CountryFrance  Country = "France"
	CountryBelgium Country = "Belgique"
)

var validCountries = []Country{
	CountryFrance,
	CountryBelgium,
}

// String implements fmt.Stringer.
func (c Country) String() string {
	return string(c)
}

// IsValid reports whether the country is in the shipping enumeration.
func (c Country) IsValid() bool {
	for _, candidate := range validCountries {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCountry converts a raw string into a Country.
func ParseCountry(value string) (Country, error) {
	for _, candidate := range validCountries {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid country %q", value)
}

package checkout

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/elitecorner/storefront-backend/pkg/enums"
)

// CustomerInfo is the checkout form as submitted by the storefront.
type CustomerInfo struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Street         string `json:"street"`
	PostalCode     string `json:"postalCode"`
	City           string `json:"city"`
	Country        string `json:"country"`
	DeliveryMethod string `json:"deliveryMethod"`
}

// FieldRule is the minimum-length constraint for one form field, with the
// message returned when it fails.
type FieldRule struct {
	MinLength int
	Message   string
}

// Profile bundles the validation rules for one storefront generation.
// Rules are keyed by the form's JSON field names so error maps line up
// with what the client submitted.
type Profile struct {
	Name            string
	Rules           map[string]FieldRule
	Countries       []enums.Country
	DeliveryMethods []enums.DeliveryMethod
}

const (
	// ProfileStandard is the current storefront: stricter name lengths,
	// a closed country list and parcel delivery only.
	ProfileStandard = "standard"
	// ProfileLegacy matches the original storefront: looser names, free
	// country text and local hand delivery.
	ProfileLegacy = "legacy"
)

var emailValidator = validator.New()

var standardProfile = Profile{
	Name: ProfileStandard,
	Rules: map[string]FieldRule{
		"firstName":  {MinLength: 2, Message: "Le prénom doit contenir au moins 2 caractères"},
		"lastName":   {MinLength: 2, Message: "Le nom doit contenir au moins 2 caractères"},
		"phone":      {MinLength: 10, Message: "Le numéro de téléphone doit contenir au moins 10 caractères"},
		"street":     {MinLength: 5, Message: "L'adresse doit contenir au moins 5 caractères"},
		"postalCode": {MinLength: 4, Message: "Le code postal doit contenir au moins 4 caractères"},
		"city":       {MinLength: 2, Message: "La ville doit contenir au moins 2 caractères"},
	},
	Countries: []enums.Country{enums.CountryFrance, enums.CountryBelgium},
	DeliveryMethods: []enums.DeliveryMethod{
		enums.DeliveryParcelFranceRelais,
		enums.DeliveryParcelFranceHome,
	},
}

var legacyProfile = Profile{
	Name: ProfileLegacy,
	Rules: map[string]FieldRule{
		"firstName":  {MinLength: 1, Message: "Le prénom est requis"},
		"lastName":   {MinLength: 1, Message: "Le nom est requis"},
		"phone":      {MinLength: 10, Message: "Le numéro de téléphone doit contenir au moins 10 caractères"},
		"street":     {MinLength: 5, Message: "L'adresse doit contenir au moins 5 caractères"},
		"postalCode": {MinLength: 4, Message: "Le code postal doit contenir au moins 4 caractères"},
		"city":       {MinLength: 2, Message: "La ville doit contenir au moins 2 caractères"},
		"country":    {MinLength: 2, Message: "Le pays doit contenir au moins 2 caractères"},
	},
	DeliveryMethods: []enums.DeliveryMethod{
		enums.DeliveryParcelFranceRelais,
		enums.DeliveryParcelFranceHome,
		enums.DeliveryHandAulnay,
		enums.DeliveryHandIDF,
	},
}

// ProfileByName resolves a configured profile name.
func ProfileByName(name string) (Profile, error) {
	switch name {
	case ProfileStandard:
		return standardProfile, nil
	case ProfileLegacy:
		return legacyProfile, nil
	default:
		return Profile{}, fmt.Errorf("unknown checkout profile %q", name)
	}
}

// AllowsDeliveryMethod reports whether the profile offers the method.
func (p Profile) AllowsDeliveryMethod(method enums.DeliveryMethod) bool {
	for _, m := range p.DeliveryMethods {
		if m == method {
			return true
		}
	}
	return false
}

// Validate checks the whole form and returns one message per failing
// field, keyed by JSON field name. An empty map means the form is valid.
func (p Profile) Validate(info CustomerInfo) map[string]string {
	fieldErrors := make(map[string]string)

	values := map[string]string{
		"firstName":  info.FirstName,
		"lastName":   info.LastName,
		"phone":      info.Phone,
		"street":     info.Street,
		"postalCode": info.PostalCode,
		"city":       info.City,
		"country":    info.Country,
	}
	for field, rule := range p.Rules {
		if len(strings.TrimSpace(values[field])) < rule.MinLength {
			fieldErrors[field] = rule.Message
		}
	}

	email := strings.TrimSpace(info.Email)
	if email == "" {
		fieldErrors["email"] = "L'email est requis"
	} else if err := emailValidator.Var(email, "email"); err != nil {
		fieldErrors["email"] = "L'adresse email est invalide"
	}

	if len(p.Countries) > 0 {
		if !p.allowsCountry(info.Country) {
			fieldErrors["country"] = "Le pays doit être " + countryList(p.Countries)
		}
	}

	method := strings.TrimSpace(info.DeliveryMethod)
	if method == "" {
		fieldErrors["deliveryMethod"] = "Le mode de livraison est requis"
	} else if parsed, err := enums.ParseDeliveryMethod(method); err != nil || !p.AllowsDeliveryMethod(parsed) {
		fieldErrors["deliveryMethod"] = "Mode de livraison invalide"
	}

	return fieldErrors
}

func (p Profile) allowsCountry(value string) bool {
	for _, c := range p.Countries {
		if c.String() == strings.TrimSpace(value) {
			return true
		}
	}
	return false
}

func countryList(countries []enums.Country) string {
	names := make([]string, 0, len(countries))
	for _, c := range countries {
		names = append(names, c.String())
	}
	return strings.Join(names, " ou ")
}

package enums

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DeliveryMethod identifies a shipment option offered at checkout.
type DeliveryMethod string

const (
	DeliveryParcelFranceRelais DeliveryMethod = "parcel-france-relais"
	DeliveryParcelFranceHome   DeliveryMethod = "parcel-france-home"
	DeliveryHandAulnay         DeliveryMethod = "hand-delivery-aulnay"
	DeliveryHandIDF            DeliveryMethod = "hand-delivery-idf"
)

var validDeliveryMethods = []DeliveryMethod{
	DeliveryParcelFranceRelais,
	DeliveryParcelFranceHome,
	DeliveryHandAulnay,
	DeliveryHandIDF,
}

var deliveryFees = map[DeliveryMethod]decimal.Decimal{
	DeliveryParcelFranceRelais: decimal.RequireFromString("5.90"),
	DeliveryParcelFranceHome:   decimal.RequireFromString("15.00"),
}

var deliveryLabels = map[DeliveryMethod]string{
	DeliveryParcelFranceRelais: "Envoi en point relais",
	DeliveryParcelFranceHome:   "Envoi à domicile",
	DeliveryHandAulnay:         "Remise en main propre gratuite sur Aulnay-sous-Bois",
	DeliveryHandIDF:            "Livraison de main à main en Île-de-France",
}

// String implements fmt.Stringer.
func (m DeliveryMethod) String() string {
	return string(m)
}

// IsValid reports whether the delivery method is recognized.
func (m DeliveryMethod) IsValid() bool {
	for _, candidate := range validDeliveryMethods {
		if candidate == m {
			return true
		}
	}
	return false
}

// Fee returns the flat shipping fee for the method. Unknown and
// hand-delivery methods cost nothing.
func (m DeliveryMethod) Fee() decimal.Decimal {
	if fee, ok := deliveryFees[m]; ok {
		return fee
	}
	return decimal.Zero
}

// Label returns the human-readable description used in order messages.
func (m DeliveryMethod) Label() string {
	return deliveryLabels[m]
}

// ParseDeliveryMethod converts a raw string into a DeliveryMethod.
func ParseDeliveryMethod(value string) (DeliveryMethod, error) {
	for _, candidate := range validDeliveryMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid delivery method %q", value)
}

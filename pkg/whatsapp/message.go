package whatsapp

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// OrderLine is one itemized row of the order message.
type OrderLine struct {
	Name      string
	Size      *string
	Color     *string
	Quantity  int
	LineTotal decimal.Decimal
}

// OrderMessage carries everything needed to compose the hand-off text.
type OrderMessage struct {
	OrderNumber    string
	CustomerName   string
	Email          string
	Phone          string
	Street         string
	PostalCode     string
	City           string
	Country        string
	Items          []OrderLine
	Subtotal       decimal.Decimal
	DeliveryFee    decimal.Decimal
	DiscountCode   string
	DiscountAmount *decimal.Decimal
	Total          decimal.Decimal
	DeliveryLabel  string
}

// Compose renders the plain-text order summary sent to store staff.
// The delivery fee line is omitted when zero and the discount line only
// appears when a discount was applied.
func Compose(m OrderMessage) string {
	var b strings.Builder

	b.WriteString("*Nouvelle Commande*\n\n")
	fmt.Fprintf(&b, "*Numéro: %s*\n\n", m.OrderNumber)

	fmt.Fprintf(&b, "*Client:* %s\n", m.CustomerName)
	fmt.Fprintf(&b, "*Email:* %s\n", m.Email)
	fmt.Fprintf(&b, "*Téléphone:* %s\n", m.Phone)
	fmt.Fprintf(&b, "*Adresse:*\n%s\n%s %s\n%s\n\n", m.Street, m.PostalCode, m.City, m.Country)

	b.WriteString("*Articles commandés:*\n")
	for i, item := range m.Items {
		fmt.Fprintf(&b, "%d. %s", i+1, item.Name)
		if item.Size != nil && *item.Size != "" {
			fmt.Fprintf(&b, " (Taille: %s)", *item.Size)
		}
		if item.Color != nil && *item.Color != "" {
			fmt.Fprintf(&b, " (Couleur: %s)", *item.Color)
		}
		fmt.Fprintf(&b, " x%d - %s€\n", item.Quantity, item.LineTotal.StringFixed(2))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "*Sous-total:* %s€\n", m.Subtotal.StringFixed(2))
	if m.DeliveryFee.IsPositive() {
		fmt.Fprintf(&b, "*Frais de livraison:* %s€\n", m.DeliveryFee.StringFixed(2))
	}
	if m.DiscountAmount != nil {
		fmt.Fprintf(&b, "*Réduction (%s):* -%s€\n", m.DiscountCode, m.DiscountAmount.StringFixed(2))
	}
	fmt.Fprintf(&b, "*Total:* %s€\n", m.Total.StringFixed(2))

	if m.DeliveryLabel != "" {
		fmt.Fprintf(&b, "\n*Mode de livraison:* %s\n", m.DeliveryLabel)
	}

	return b.String()
}

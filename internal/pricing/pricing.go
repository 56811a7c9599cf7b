package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/elitecorner/storefront-backend/internal/cart"
	"github.com/elitecorner/storefront-backend/pkg/enums"
)

// Discount is a promotional deduction resolved upstream and consumed
// verbatim at checkout.
type Discount struct {
	DiscountID string             `json:"discount_id"`
	Code       string             `json:"code"`
	Type       enums.DiscountType `json:"type"`
	Value      decimal.Decimal    `json:"value"`
	Amount     decimal.Decimal    `json:"amount"`
}

// Quote is the fully derived price breakdown for a cart.
type Quote struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Discount    *Discount       `json:"discount,omitempty"`
	Total       decimal.Decimal `json:"total"`
}

// Subtotal sums unit price times quantity over all items, preferring the
// discounted unit price when one is present.
func Subtotal(items []cart.Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// BuildQuote derives the full breakdown from explicit inputs. Pure: same
// inputs always produce the same quote.
func BuildQuote(items []cart.Item, method enums.DeliveryMethod, discount *Discount) Quote {
	subtotal := Subtotal(items)
	fee := method.Fee()

	total := subtotal.Add(fee)
	if discount != nil {
		total = total.Sub(discount.Amount)
	}
	// Never bill a negative total, even when the discount exceeds the cart.
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Quote{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Discount:    discount,
		Total:       total,
	}
}

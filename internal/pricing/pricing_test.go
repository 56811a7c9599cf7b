package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/elitecorner/storefront-backend/internal/cart"
	"github.com/elitecorner/storefront-backend/pkg/enums"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testItems() []cart.Item {
	return []cart.Item{
		{ProductID: uuid.New(), Name: "Tee", UnitPrice: dec("15.00"), Quantity: 2},
		{ProductID: uuid.New(), Name: "Cap", UnitPrice: dec("10.00"), Quantity: 1},
	}
}

func TestSubtotalPrefersDiscountedUnitPrice(t *testing.T) {
	t.Parallel()

	discounted := dec("12.00")
	items := []cart.Item{
		{ProductID: uuid.New(), UnitPrice: dec("15.00"), DiscountedUnitPrice: &discounted, Quantity: 2},
	}

	if got := Subtotal(items); !got.Equal(dec("24.00")) {
		t.Fatalf("expected subtotal 24.00, got %s", got)
	}
}

func TestBuildQuoteRelaisFee(t *testing.T) {
	t.Parallel()

	quote := BuildQuote(testItems(), enums.DeliveryParcelFranceRelais, nil)

	if !quote.Subtotal.Equal(dec("40.00")) {
		t.Fatalf("expected subtotal 40.00, got %s", quote.Subtotal)
	}
	if !quote.DeliveryFee.Equal(dec("5.90")) {
		t.Fatalf("expected fee 5.90, got %s", quote.DeliveryFee)
	}
	if !quote.Total.Equal(dec("45.90")) {
		t.Fatalf("expected total 45.90, got %s", quote.Total)
	}
}

func TestBuildQuoteHomeFee(t *testing.T) {
	t.Parallel()

	quote := BuildQuote(testItems(), enums.DeliveryParcelFranceHome, nil)

	if !quote.DeliveryFee.Equal(dec("15.00")) {
		t.Fatalf("expected fee 15.00, got %s", quote.DeliveryFee)
	}
	if !quote.Total.Equal(dec("55.00")) {
		t.Fatalf("expected total 55.00, got %s", quote.Total)
	}
}

func TestBuildQuoteHandDeliveryIsFree(t *testing.T) {
	t.Parallel()

	quote := BuildQuote(testItems(), enums.DeliveryHandAulnay, nil)

	if !quote.DeliveryFee.IsZero() {
		t.Fatalf("expected zero fee, got %s", quote.DeliveryFee)
	}
	if !quote.Total.Equal(dec("40.00")) {
		t.Fatalf("expected total 40.00, got %s", quote.Total)
	}
}

func TestBuildQuoteAppliesDiscount(t *testing.T) {
	t.Parallel()

	discount := &Discount{
		Code:   "WELCOME10",
		Type:   enums.DiscountTypeFixed,
		Value:  dec("10.00"),
		Amount: dec("10.00"),
	}
	quote := BuildQuote(testItems(), enums.DeliveryParcelFranceRelais, discount)

	if !quote.Total.Equal(dec("35.90")) {
		t.Fatalf("expected total 35.90, got %s", quote.Total)
	}
}

func TestBuildQuoteFloorsAtZero(t *testing.T) {
	t.Parallel()

	discount := &Discount{
		Code:   "BIGPROMO",
		Type:   enums.DiscountTypeFixed,
		Value:  dec("100.00"),
		Amount: dec("100.00"),
	}
	quote := BuildQuote(testItems(), enums.DeliveryParcelFranceRelais, discount)

	if !quote.Total.IsZero() {
		t.Fatalf("expected total floored at zero, got %s", quote.Total)
	}
}

func TestBuildQuoteIsDeterministic(t *testing.T) {
	t.Parallel()

	items := testItems()
	first := BuildQuote(items, enums.DeliveryParcelFranceHome, nil)
	second := BuildQuote(items, enums.DeliveryParcelFranceHome, nil)

	if !first.Total.Equal(second.Total) || !first.Subtotal.Equal(second.Subtotal) {
		t.Fatalf("expected identical quotes, got %+v and %+v", first, second)
	}
}

func TestBuildQuoteEmptyCart(t *testing.T) {
	t.Parallel()

	quote := BuildQuote(nil, enums.DeliveryParcelFranceRelais, nil)

	if !quote.Subtotal.IsZero() {
		t.Fatalf("expected zero subtotal, got %s", quote.Subtotal)
	}
	if !quote.Total.Equal(dec("5.90")) {
		t.Fatalf("expected total 5.90 for empty cart with relais fee, got %s", quote.Total)
	}
}

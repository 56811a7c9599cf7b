package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/elitecorner/storefront-backend/pkg/errors"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testItem(quantity int) Item {
	return Item{
		ProductID: uuid.New(),
		Name:      "Tee",
		UnitPrice: dec("15.00"),
		Quantity:  quantity,
	}
}

func TestAddMergesSameLine(t *testing.T) {
	t.Parallel()

	c := NewContainer()
	item := testItem(1)

	if err := c.Add("session-1", item); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Add("session-1", item); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items := c.Items("session-1")
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("expected one merged line with quantity 2, got %+v", items)
	}
}

func TestAddKeepsVariantLinesSeparate(t *testing.T) {
	t.Parallel()

	c := NewContainer()
	productID := uuid.New()
	variantA := uuid.New()
	variantB := uuid.New()

	c.Add("session-1", Item{ProductID: productID, VariantID: &variantA, Name: "Tee", UnitPrice: dec("15.00"), Quantity: 1})
	c.Add("session-1", Item{ProductID: productID, VariantID: &variantB, Name: "Tee", UnitPrice: dec("15.00"), Quantity: 1})

	if items := c.Items("session-1"); len(items) != 2 {
		t.Fatalf("expected two lines for distinct variants, got %+v", items)
	}
}

func TestAddValidation(t *testing.T) {
	t.Parallel()

	c := NewContainer()

	err := c.Add("", testItem(1))
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for empty session, got %v", err)
	}

	err = c.Add("session-1", testItem(0))
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for zero quantity, got %v", err)
	}
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	t.Parallel()

	c := NewContainer()
	item := testItem(2)
	c.Add("session-1", item)

	if err := c.SetQuantity("session-1", item.ProductID, nil, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items := c.Items("session-1"); len(items) != 0 {
		t.Fatalf("expected empty cart, got %+v", items)
	}
}

func TestSetQuantityMissingLine(t *testing.T) {
	t.Parallel()

	c := NewContainer()

	err := c.SetQuantity("session-1", uuid.New(), nil, 3)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestClearEmptiesSessionOnly(t *testing.T) {
	t.Parallel()

	c := NewContainer()
	c.Add("session-1", testItem(1))
	c.Add("session-2", testItem(1))

	c.Clear("session-1")

	if items := c.Items("session-1"); len(items) != 0 {
		t.Fatalf("expected session-1 empty, got %+v", items)
	}
	if items := c.Items("session-2"); len(items) != 1 {
		t.Fatalf("expected session-2 untouched, got %+v", items)
	}
}

func TestSubscriberSeesMutations(t *testing.T) {
	t.Parallel()

	c := NewContainer()
	var calls int
	var last []Item
	c.Subscribe(func(sessionID string, items []Item) {
		calls++
		last = items
	})

	item := testItem(1)
	c.Add("session-1", item)
	c.Remove("session-1", item.ProductID, nil)

	if calls != 2 {
		t.Fatalf("expected two notifications, got %d", calls)
	}
	if len(last) != 0 {
		t.Fatalf("expected empty snapshot after remove, got %+v", last)
	}
}

func TestEffectiveUnitPrice(t *testing.T) {
	t.Parallel()

	discounted := dec("10.00")
	item := Item{UnitPrice: dec("15.00"), DiscountedUnitPrice: &discounted, Quantity: 3}

	if got := item.EffectiveUnitPrice(); !got.Equal(discounted) {
		t.Fatalf("expected discounted price, got %s", got)
	}
	if got := item.LineTotal(); !got.Equal(dec("30.00")) {
		t.Fatalf("expected line total 30.00, got %s", got)
	}

	zero := decimal.Zero
	item.DiscountedUnitPrice = &zero
	if got := item.EffectiveUnitPrice(); !got.Equal(dec("15.00")) {
		t.Fatalf("expected base price for zero discount, got %s", got)
	}
}

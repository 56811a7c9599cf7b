package cart

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/elitecorner/storefront-backend/pkg/errors"
)

// Item is the cart snapshot of a product (and optionally one of its
// variants) taken at add-to-cart time.
type Item struct {
	ProductID           uuid.UUID        `json:"product_id"`
	VariantID           *uuid.UUID       `json:"variant_id,omitempty"`
	Name                string           `json:"name"`
	UnitPrice           decimal.Decimal  `json:"unit_price"`
	DiscountedUnitPrice *decimal.Decimal `json:"discounted_unit_price,omitempty"`
	Quantity            int              `json:"quantity"`
	Size                *string          `json:"size,omitempty"`
	Color               *string          `json:"color,omitempty"`
	ImageURL            *string          `json:"image_url,omitempty"`
}

// EffectiveUnitPrice prefers the discounted unit price when one is set.
func (i Item) EffectiveUnitPrice() decimal.Decimal {
	if i.DiscountedUnitPrice != nil && i.DiscountedUnitPrice.IsPositive() {
		return *i.DiscountedUnitPrice
	}
	return i.UnitPrice
}

// LineTotal is unit price times quantity.
func (i Item) LineTotal() decimal.Decimal {
	return i.EffectiveUnitPrice().Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func (i Item) key() string {
	if i.VariantID != nil {
		return i.ProductID.String() + "/" + i.VariantID.String()
	}
	return i.ProductID.String()
}

// Subscriber observes cart mutations for one session.
type Subscriber func(sessionID string, items []Item)

// Container holds every session cart behind an explicit mutation API.
// All access goes through the container; there is no ambient global state.
type Container struct {
	mu    sync.RWMutex
	carts map[string][]Item
	subs  []Subscriber
}

// NewContainer returns an empty cart container.
func NewContainer() *Container {
	return &Container{carts: make(map[string][]Item)}
}

// Subscribe registers a callback fired after every mutation. Intended for
// UI refresh hooks; callbacks run synchronously on the mutating flow.
func (c *Container) Subscribe(fn Subscriber) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	c.subs = append(c.subs, fn)
	c.mu.Unlock()
}

// Items returns a copy of the session's cart.
func (c *Container) Items(sessionID string) []Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return copyItems(c.carts[sessionID])
}

// Add inserts the item, merging quantities when the same product/variant
// pair is already present.
func (c *Container) Add(sessionID string, item Item) error {
	if strings.TrimSpace(sessionID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if item.ProductID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if item.Quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	c.mu.Lock()
	items := c.carts[sessionID]
	merged := false
	for idx := range items {
		if items[idx].key() == item.key() {
			items[idx].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, item)
	}
	c.carts[sessionID] = items
	snapshot := copyItems(items)
	c.mu.Unlock()

	c.notify(sessionID, snapshot)
	return nil
}

// SetQuantity updates the line quantity in place. Zero or below removes
// the line.
func (c *Container) SetQuantity(sessionID string, productID uuid.UUID, variantID *uuid.UUID, quantity int) error {
	if productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	probe := Item{ProductID: productID, VariantID: variantID}

	c.mu.Lock()
	items := c.carts[sessionID]
	found := false
	next := items[:0]
	for _, existing := range items {
		if existing.key() != probe.key() {
			next = append(next, existing)
			continue
		}
		found = true
		if quantity >= 1 {
			existing.Quantity = quantity
			next = append(next, existing)
		}
	}
	if !found {
		c.mu.Unlock()
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	c.carts[sessionID] = next
	snapshot := copyItems(next)
	c.mu.Unlock()

	c.notify(sessionID, snapshot)
	return nil
}

// Remove deletes the product/variant line if it exists.
func (c *Container) Remove(sessionID string, productID uuid.UUID, variantID *uuid.UUID) {
	probe := Item{ProductID: productID, VariantID: variantID}

	c.mu.Lock()
	items := c.carts[sessionID]
	next := items[:0]
	for _, existing := range items {
		if existing.key() != probe.key() {
			next = append(next, existing)
		}
	}
	c.carts[sessionID] = next
	snapshot := copyItems(next)
	c.mu.Unlock()

	c.notify(sessionID, snapshot)
}

// Clear drops the whole session cart.
func (c *Container) Clear(sessionID string) {
	c.mu.Lock()
	delete(c.carts, sessionID)
	c.mu.Unlock()

	c.notify(sessionID, nil)
}

func (c *Container) notify(sessionID string, items []Item) {
	c.mu.RLock()
	subs := make([]Subscriber, len(c.subs))
	copy(subs, c.subs)
	c.mu.RUnlock()

	for _, fn := range subs {
		fn(sessionID, items)
	}
}

func copyItems(items []Item) []Item {
	if len(items) == 0 {
		return nil
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

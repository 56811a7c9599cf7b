package wishlist

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/elitecorner/storefront-backend/pkg/errors"
)

// Entry is one liked product.
type Entry struct {
	ProductID uuid.UUID `json:"product_id"`
	AddedAt   time.Time `json:"added_at"`
}

// Container holds every session wishlist behind an explicit mutation API.
type Container struct {
	mu    sync.RWMutex
	lists map[string][]Entry
	now   func() time.Time
}

// NewContainer returns an empty wishlist container.
func NewContainer() *Container {
	return &Container{lists: make(map[string][]Entry), now: time.Now}
}

// Entries returns a copy of the session's wishlist, oldest first.
func (c *Container) Entries(sessionID string) []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entries := c.lists[sessionID]
	if len(entries) == 0 {
		return nil
	}
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Contains reports whether the product is liked by the session.
func (c *Container) Contains(sessionID string, productID uuid.UUID) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, entry := range c.lists[sessionID] {
		if entry.ProductID == productID {
			return true
		}
	}
	return false
}

// Add likes a product. Adding twice is a no-op.
func (c *Container) Add(sessionID string, productID uuid.UUID) error {
	if strings.TrimSpace(sessionID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, entry := range c.lists[sessionID] {
		if entry.ProductID == productID {
			return nil
		}
	}
	c.lists[sessionID] = append(c.lists[sessionID], Entry{ProductID: productID, AddedAt: c.now()})
	return nil
}

// Remove unlikes a product regardless of prior state.
func (c *Container) Remove(sessionID string, productID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entries := c.lists[sessionID]
	next := entries[:0]
	for _, entry := range entries {
		if entry.ProductID != productID {
			next = append(next, entry)
		}
	}
	c.lists[sessionID] = next
}

// Clear drops the whole session wishlist.
func (c *Container) Clear(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.lists, sessionID)
}

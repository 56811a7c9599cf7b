package discounts

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elitecorner/storefront-backend/internal/pricing"
	pkgerrors "github.com/elitecorner/storefront-backend/pkg/errors"
	"github.com/elitecorner/storefront-backend/pkg/redis"
)

// KV is the subset of the redis client the store needs.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	PendingDiscountKey(sessionID string) string
}

// Store keeps the discount a session selected on a previous page until
// checkout consumes it. Entries expire on their own; checkout clears the
// entry explicitly after the order row is persisted, never before.
type Store struct {
	kv  KV
	ttl time.Duration
}

// NewStore builds a pending-discount store with the given TTL.
func NewStore(kv KV, ttl time.Duration) (*Store, error) {
	if kv == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "redis client is required")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Store{kv: kv, ttl: ttl}, nil
}

// Put stores the session's pending discount, replacing any prior one.
func (s *Store) Put(ctx context.Context, sessionID string, discount pricing.Discount) error {
	if strings.TrimSpace(sessionID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if discount.Code == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount code is required")
	}
	if discount.Amount.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount amount must not be negative")
	}

	payload, err := json.Marshal(discount)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode pending discount")
	}
	if err := s.kv.Set(ctx, s.kv.PendingDiscountKey(sessionID), payload, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store pending discount")
	}
	return nil
}

// Peek reads the pending discount without consuming it.
func (s *Store) Peek(ctx context.Context, sessionID string) (*pricing.Discount, error) {
	raw, err := s.kv.Get(ctx, s.kv.PendingDiscountKey(sessionID))
	if err != nil {
		if errors.Is(err, redis.ErrNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load pending discount")
	}

	var discount pricing.Discount
	if err := json.Unmarshal([]byte(raw), &discount); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode pending discount")
	}
	return &discount, nil
}

// Clear removes the pending discount. Called after successful persistence.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if err := s.kv.Del(ctx, s.kv.PendingDiscountKey(sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear pending discount")
	}
	return nil
}

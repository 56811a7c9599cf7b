package checkout

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/elitecorner/storefront-backend/pkg/errors"
	"github.com/elitecorner/storefront-backend/pkg/redis"
)

const (
	orderNumberPrefix = "CMD"
	orderSuffixLen    = 4
	base36Alphabet    = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// NewOrderNumber builds a fresh human-readable order number:
// CMD-<millisecond timestamp, base36>-<4 random base36 chars>.
func NewOrderNumber() string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	suffix := make([]byte, orderSuffixLen)
	for i := range suffix {
		suffix[i] = base36Alphabet[rand.IntN(len(base36Alphabet))]
	}
	return fmt.Sprintf("%s-%s-%s", orderNumberPrefix, ts, suffix)
}

// NumberKV is the subset of the redis client the number source needs.
type NumberKV interface {
	Get(ctx context.Context, key string) (string, error)
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
	OrderNumberKey(sessionID string) string
}

// NumberSource hands out one stable order number per checkout session.
// Repeated calls for the same session return the same number until the
// reservation is released or expires.
type NumberSource struct {
	kv  NumberKV
	ttl time.Duration
}

// NewNumberSource builds a session order-number source with the given
// reservation TTL.
func NewNumberSource(kv NumberKV, ttl time.Duration) (*NumberSource, error) {
	if kv == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "redis client is required")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &NumberSource{kv: kv, ttl: ttl}, nil
}

// Ensure returns the order number for the session. A non-empty requested
// number wins outright; otherwise the session's reserved number is reused,
// reserving a fresh one on first call.
func (s *NumberSource) Ensure(ctx context.Context, sessionID, requested string) (string, error) {
	if requested = strings.TrimSpace(requested); requested != "" {
		return requested, nil
	}

	key := s.kv.OrderNumberKey(sessionID)
	for attempt := 0; attempt < 3; attempt++ {
		number := NewOrderNumber()
		reserved, err := s.kv.SetNX(ctx, key, number, s.ttl)
		if err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reserve order number")
		}
		if reserved {
			return number, nil
		}

		existing, err := s.kv.Get(ctx, key)
		if err == nil {
			return existing, nil
		}
		// The reservation expired between SetNX and Get; try again.
		if errors.Is(err, redis.ErrNotFound) {
			continue
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load reserved order number")
	}
	return NewOrderNumber(), nil
}

// Release drops the session's reservation after a completed hand-off.
func (s *NumberSource) Release(ctx context.Context, sessionID string) error {
	if err := s.kv.Del(ctx, s.kv.OrderNumberKey(sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "release order number")
	}
	return nil
}

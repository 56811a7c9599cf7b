package discounts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/elitecorner/storefront-backend/internal/pricing"
	"github.com/elitecorner/storefront-backend/pkg/enums"
	pkgerrors "github.com/elitecorner/storefront-backend/pkg/errors"
	"github.com/elitecorner/storefront-backend/pkg/redis"
)

type fakeKV struct {
	values map[string]string
	getErr error
	setErr error
	ttls   map[string]time.Duration
}

func newFakeKV() *fakeKV {
	return &fakeKV{values: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (f *fakeKV) Get(ctx context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	value, ok := f.values[key]
	if !ok {
		return "", redis.ErrNotFound
	}
	return value, nil
}

func (f *fakeKV) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	switch v := value.(type) {
	case []byte:
		f.values[key] = string(v)
	case string:
		f.values[key] = v
	}
	f.ttls[key] = ttl
	return nil
}

func (f *fakeKV) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

func (f *fakeKV) PendingDiscountKey(sessionID string) string {
	return "pending_discount:" + sessionID
}

func testDiscount() pricing.Discount {
	return pricing.Discount{
		DiscountID: "disc-1",
		Code:       "WELCOME10",
		Type:       enums.DiscountTypeFixed,
		Value:      decimal.RequireFromString("10.00"),
		Amount:     decimal.RequireFromString("10.00"),
	}
}

func TestStorePutAndPeek(t *testing.T) {
	t.Parallel()

	kv := newFakeKV()
	store, err := NewStore(kv, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := store.Put(context.Background(), "session-1", testDiscount()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.Peek(context.Background(), "session-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.Code != "WELCOME10" || !got.Amount.Equal(decimal.RequireFromString("10.00")) {
		t.Fatalf("unexpected discount: %+v", got)
	}

	if ttl := kv.ttls[kv.PendingDiscountKey("session-1")]; ttl != time.Hour {
		t.Fatalf("expected 1h ttl, got %s", ttl)
	}
}

func TestStorePeekMissingReturnsNil(t *testing.T) {
	t.Parallel()

	store, _ := NewStore(newFakeKV(), time.Hour)

	got, err := store.Peek(context.Background(), "session-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing discount, got %+v", got)
	}
}

func TestStorePutValidation(t *testing.T) {
	t.Parallel()

	store, _ := NewStore(newFakeKV(), time.Hour)

	discount := testDiscount()
	discount.Code = ""
	err := store.Put(context.Background(), "session-1", discount)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	discount = testDiscount()
	discount.Amount = decimal.RequireFromString("-1.00")
	err = store.Put(context.Background(), "session-1", discount)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestStoreClearRemovesEntry(t *testing.T) {
	t.Parallel()

	kv := newFakeKV()
	store, _ := NewStore(kv, time.Hour)

	if err := store.Put(context.Background(), "session-1", testDiscount()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Clear(context.Background(), "session-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.Peek(context.Background(), "session-1")
	if err != nil || got != nil {
		t.Fatalf("expected cleared discount, got %+v (%v)", got, err)
	}
}

func TestStoreDependencyFailure(t *testing.T) {
	t.Parallel()

	kv := newFakeKV()
	kv.getErr = errors.New("redis down")
	store, _ := NewStore(kv, time.Hour)

	_, err := store.Peek(context.Background(), "session-1")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

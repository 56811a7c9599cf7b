package checkout

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/elitecorner/storefront-backend/pkg/redis"
)

var orderNumberPattern = regexp.MustCompile(`^CMD-[0-9A-Z]+-[0-9A-Z]{4}$`)

func TestNewOrderNumberFormat(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		number := NewOrderNumber()
		if !orderNumberPattern.MatchString(number) {
			t.Fatalf("unexpected order number format: %s", number)
		}
		seen[number] = struct{}{}
	}
	if len(seen) < 2 {
		t.Fatal("expected random suffixes to differ")
	}
}

type stubNumberKV struct {
	values map[string]string
	getErr error
	setErr error
}

func newStubNumberKV() *stubNumberKV {
	return &stubNumberKV{values: make(map[string]string)}
}

func (s *stubNumberKV) Get(ctx context.Context, key string) (string, error) {
	if s.getErr != nil {
		return "", s.getErr
	}
	value, ok := s.values[key]
	if !ok {
		return "", redis.ErrNotFound
	}
	return value, nil
}

func (s *stubNumberKV) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	if s.setErr != nil {
		return false, s.setErr
	}
	if _, ok := s.values[key]; ok {
		return false, nil
	}
	s.values[key] = value.(string)
	return true, nil
}

func (s *stubNumberKV) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(s.values, key)
	}
	return nil
}

func (s *stubNumberKV) OrderNumberKey(sessionID string) string {
	return "order_number:" + sessionID
}

func TestNumberSourceRequestedNumberWins(t *testing.T) {
	t.Parallel()

	source, err := NewNumberSource(newStubNumberKV(), time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	number, err := source.Ensure(context.Background(), "session-1", "CMD-FIXED-AAAA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if number != "CMD-FIXED-AAAA" {
		t.Fatalf("expected requested number kept, got %s", number)
	}
}

func TestNumberSourceStableAcrossCalls(t *testing.T) {
	t.Parallel()

	source, _ := NewNumberSource(newStubNumberKV(), time.Minute)

	first, err := source.Ensure(context.Background(), "session-1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := source.Ensure(context.Background(), "session-1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Fatalf("expected stable number, got %s then %s", first, second)
	}
}

func TestNumberSourceReleaseAllowsFreshNumber(t *testing.T) {
	t.Parallel()

	source, _ := NewNumberSource(newStubNumberKV(), time.Minute)

	first, _ := source.Ensure(context.Background(), "session-1", "")
	if err := source.Release(context.Background(), "session-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, _ := source.Ensure(context.Background(), "session-1", "")

	if first == second {
		t.Fatalf("expected fresh number after release, got %s twice", first)
	}
}

func TestNumberSourceDependencyFailure(t *testing.T) {
	t.Parallel()

	kv := newStubNumberKV()
	kv.setErr = errors.New("redis down")
	source, _ := NewNumberSource(kv, time.Minute)

	if _, err := source.Ensure(context.Background(), "session-1", ""); err == nil {
		t.Fatal("expected error when redis is down")
	}
}

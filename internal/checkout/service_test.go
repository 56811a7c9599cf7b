package checkout

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/elitecorner/storefront-backend/internal/cart"
	"github.com/elitecorner/storefront-backend/internal/orders"
	"github.com/elitecorner/storefront-backend/internal/pricing"
	"github.com/elitecorner/storefront-backend/pkg/config"
	"github.com/elitecorner/storefront-backend/pkg/enums"
	pkgerrors "github.com/elitecorner/storefront-backend/pkg/errors"
	"github.com/elitecorner/storefront-backend/pkg/logger"
	"github.com/elitecorner/storefront-backend/pkg/metrics"
)

type stubCarts struct {
	mu      sync.Mutex
	items   []cart.Item
	cleared bool
}

func (s *stubCarts) Items(sessionID string) []cart.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]cart.Item(nil), s.items...)
}

func (s *stubCarts) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleared = true
}

func (s *stubCarts) wasCleared() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cleared
}

type stubDiscounts struct {
	mu       sync.Mutex
	discount *pricing.Discount
	peekErr  error
	cleared  bool
}

func (s *stubDiscounts) Peek(ctx context.Context, sessionID string) (*pricing.Discount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.peekErr != nil {
		return nil, s.peekErr
	}
	return s.discount, nil
}

func (s *stubDiscounts) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleared = true
	return nil
}

func (s *stubDiscounts) wasCleared() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cleared
}

type stubOrderWriter struct {
	mu        sync.Mutex
	createErr error
	created   []orders.CreateOrderInput
	block     chan struct{}
	started   chan struct{}
}

func (s *stubOrderWriter) Create(ctx context.Context, input orders.CreateOrderInput) (orders.OrderDTO, error) {
	if s.started != nil {
		close(s.started)
		s.started = nil
	}
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return orders.OrderDTO{}, s.createErr
	}
	s.created = append(s.created, input)

	items := make([]orders.OrderItemDTO, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, orders.OrderItemDTO{
			ProductID: item.ProductID,
			Name:      item.Name,
			Size:      item.Size,
			Color:     item.Color,
			UnitPrice: item.EffectiveUnitPrice(),
			Quantity:  item.Quantity,
		})
	}
	return orders.OrderDTO{
		OrderNumber:  input.OrderNumber,
		CustomerName: strings.TrimSpace(input.Customer.FirstName + " " + input.Customer.LastName),
		Items:        items,
	}, nil
}

func (s *stubOrderWriter) createdCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.created)
}

type stubLinker struct {
	mu       sync.Mutex
	messages []string
}

func (s *stubLinker) Link(message string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, message)
	return "https://wa.me/33612345678?text=stub"
}

func (s *stubLinker) linkCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

type testCheckout struct {
	svc       Service
	carts     *stubCarts
	discounts *stubDiscounts
	orders    *stubOrderWriter
	links     *stubLinker
}

func newTestCheckout(t *testing.T, mutate func(params *ServiceParams, deps *testCheckout)) *testCheckout {
	t.Helper()

	price := decimal.RequireFromString("20.00")
	deps := &testCheckout{
		carts: &stubCarts{items: []cart.Item{
			{ProductID: uuid.New(), Name: "Tee", UnitPrice: price, Quantity: 2},
		}},
		discounts: &stubDiscounts{},
		orders:    &stubOrderWriter{},
		links:     &stubLinker{},
	}

	numbers, err := NewNumberSource(newStubNumberKV(), time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	profile, _ := ProfileByName(ProfileStandard)
	params := ServiceParams{
		Profile:   profile,
		Carts:     deps.carts,
		Discounts: deps.discounts,
		Orders:    deps.orders,
		Numbers:   numbers,
		Links:     deps.links,
		Metrics:   metrics.NewCheckoutMetrics(nil),
		Logger:    logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		Checkout: config.CheckoutConfig{
			Profile:         ProfileStandard,
			CartClearPolicy: enums.ClearOnConfirmedUnload,
		},
	}
	if mutate != nil {
		mutate(&params, deps)
	}

	svc, err := NewService(params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	deps.svc = svc
	return deps
}

func TestHandoffPersistsBeforeLink(t *testing.T) {
	t.Parallel()

	deps := newTestCheckout(t, nil)

	handoff, err := deps.svc.Handoff(context.Background(), "session-1", "", validStandardForm())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if deps.orders.createdCount() != 1 {
		t.Fatalf("expected one persisted order, got %d", deps.orders.createdCount())
	}
	if deps.links.linkCount() != 1 {
		t.Fatalf("expected one link built, got %d", deps.links.linkCount())
	}
	if !strings.HasPrefix(handoff.WhatsAppURL, "https://wa.me/") {
		t.Fatalf("unexpected link: %s", handoff.WhatsAppURL)
	}
	if !strings.Contains(handoff.Message, "*Nouvelle Commande*") {
		t.Fatalf("unexpected message: %s", handoff.Message)
	}
	if !deps.discounts.wasCleared() {
		t.Fatal("expected pending discount cleared after persistence")
	}
}

func TestHandoffPersistenceFailureAborts(t *testing.T) {
	t.Parallel()

	deps := newTestCheckout(t, func(params *ServiceParams, d *testCheckout) {
		d.orders.createErr = pkgerrors.New(pkgerrors.CodeDependency, "db down")
	})

	_, err := deps.svc.Handoff(context.Background(), "session-1", "", validStandardForm())
	if err == nil {
		t.Fatal("expected error when persistence fails")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("unexpected error code: %v", err)
	}

	if deps.links.linkCount() != 0 {
		t.Fatal("expected no link when persistence fails")
	}
	if deps.discounts.wasCleared() {
		t.Fatal("expected pending discount kept when persistence fails")
	}
	if deps.carts.wasCleared() {
		t.Fatal("expected cart kept when persistence fails")
	}
}

func TestHandoffRejectsInvalidForm(t *testing.T) {
	t.Parallel()

	deps := newTestCheckout(t, nil)

	form := validStandardForm()
	form.Email = "nope"

	_, err := deps.svc.Handoff(context.Background(), "session-1", "", form)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if deps.orders.createdCount() != 0 {
		t.Fatal("expected no order for invalid form")
	}
}

func TestHandoffRejectsEmptyCart(t *testing.T) {
	t.Parallel()

	deps := newTestCheckout(t, func(params *ServiceParams, d *testCheckout) {
		d.carts.items = nil
	})

	_, err := deps.svc.Handoff(context.Background(), "session-1", "", validStandardForm())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestHandoffInFlightGuard(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	block := make(chan struct{})
	deps := newTestCheckout(t, func(params *ServiceParams, d *testCheckout) {
		d.orders.started = started
		d.orders.block = block
	})

	done := make(chan error, 1)
	go func() {
		_, err := deps.svc.Handoff(context.Background(), "session-1", "", validStandardForm())
		done <- err
	}()

	<-started
	_, err := deps.svc.Handoff(context.Background(), "session-1", "", validStandardForm())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict for concurrent hand-off, got %v", err)
	}

	close(block)
	if err := <-done; err != nil {
		t.Fatalf("unexpected error from first hand-off: %v", err)
	}
}

func TestHandoffUsesRequestedOrderNumber(t *testing.T) {
	t.Parallel()

	deps := newTestCheckout(t, nil)

	handoff, err := deps.svc.Handoff(context.Background(), "session-1", "CMD-KEEP-AAAA", validStandardForm())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if handoff.OrderNumber != "CMD-KEEP-AAAA" {
		t.Fatalf("expected requested order number, got %s", handoff.OrderNumber)
	}
}

func TestHandoffClearsCartAfterDelayPolicy(t *testing.T) {
	t.Parallel()

	deps := newTestCheckout(t, func(params *ServiceParams, d *testCheckout) {
		params.Checkout.CartClearPolicy = enums.ClearAfterHandoffDelay
		params.Checkout.HandoffClearDelay = 0
	})

	if _, err := deps.svc.Handoff(context.Background(), "session-1", "", validStandardForm()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deps.carts.wasCleared() {
		t.Fatal("expected cart cleared immediately with zero delay")
	}
}

func TestHandoffIncludesDiscountInMessage(t *testing.T) {
	t.Parallel()

	deps := newTestCheckout(t, func(params *ServiceParams, d *testCheckout) {
		d.discounts.discount = &pricing.Discount{
			Code:   "WELCOME10",
			Type:   enums.DiscountTypeFixed,
			Value:  decimal.RequireFromString("10.00"),
			Amount: decimal.RequireFromString("10.00"),
		}
	})

	handoff, err := deps.svc.Handoff(context.Background(), "session-1", "", validStandardForm())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(handoff.Message, "*Réduction (WELCOME10):* -10.00€") {
		t.Fatalf("expected discount line in message, got %s", handoff.Message)
	}
	// 40.00 + 5.90 - 10.00
	if !handoff.Quote.Total.Equal(decimal.RequireFromString("35.90")) {
		t.Fatalf("expected total 35.90, got %s", handoff.Quote.Total)
	}
}

func TestQuoteEmptyMethodHasNoFee(t *testing.T) {
	t.Parallel()

	deps := newTestCheckout(t, nil)

	quote, err := deps.svc.Quote(context.Background(), "session-1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !quote.DeliveryFee.IsZero() {
		t.Fatalf("expected zero fee without method, got %s", quote.DeliveryFee)
	}
}

func TestQuoteRejectsMethodOutsideProfile(t *testing.T) {
	t.Parallel()

	deps := newTestCheckout(t, nil)

	_, err := deps.svc.Quote(context.Background(), "session-1", "hand-delivery-aulnay")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	if _, err := deps.svc.Quote(context.Background(), "session-1", "teleport"); err == nil {
		t.Fatal("expected error for unknown method")
	}
}

func TestHandoffPeekFailurePropagates(t *testing.T) {
	t.Parallel()

	deps := newTestCheckout(t, func(params *ServiceParams, d *testCheckout) {
		d.discounts.peekErr = errors.New("redis down")
	})

	if _, err := deps.svc.Handoff(context.Background(), "session-1", "", validStandardForm()); err == nil {
		t.Fatal("expected error when discount lookup fails")
	}
	if deps.orders.createdCount() != 0 {
		t.Fatal("expected no order when discount lookup fails")
	}
}

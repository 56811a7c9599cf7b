package checkout

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/elitecorner/storefront-backend/internal/cart"
	"github.com/elitecorner/storefront-backend/internal/orders"
	"github.com/elitecorner/storefront-backend/internal/pricing"
	"github.com/elitecorner/storefront-backend/pkg/config"
	"github.com/elitecorner/storefront-backend/pkg/enums"
	pkgerrors "github.com/elitecorner/storefront-backend/pkg/errors"
	"github.com/elitecorner/storefront-backend/pkg/logger"
	"github.com/elitecorner/storefront-backend/pkg/metrics"
	"github.com/elitecorner/storefront-backend/pkg/whatsapp"
)

// Carts is the cart surface checkout reads from and clears.
type Carts interface {
	Items(sessionID string) []cart.Item
	Clear(sessionID string)
}

// DiscountStore reads and clears the session's pending discount.
type DiscountStore interface {
	Peek(ctx context.Context, sessionID string) (*pricing.Discount, error)
	Clear(ctx context.Context, sessionID string) error
}

// OrderWriter persists orders before the hand-off link is produced.
type OrderWriter interface {
	Create(ctx context.Context, input orders.CreateOrderInput) (orders.OrderDTO, error)
}

// Linker turns a composed message into a deep link.
type Linker interface {
	Link(message string) string
}

// HandoffDTO is the result of a completed checkout: the persisted order
// number, the link to open, and how the client should clear its cart.
type HandoffDTO struct {
	OrderNumber     string                `json:"orderNumber"`
	WhatsAppURL     string                `json:"whatsappUrl"`
	Message         string                `json:"message"`
	Quote           pricing.Quote         `json:"quote"`
	CartClearPolicy enums.CartClearPolicy `json:"cartClearPolicy"`
	CartClearDelay  time.Duration         `json:"-"`
}

// Service drives the checkout flow: quoting, form validation and the
// order hand-off.
type Service interface {
	Quote(ctx context.Context, sessionID, deliveryMethod string) (pricing.Quote, error)
	ValidateCustomer(info CustomerInfo) map[string]string
	Handoff(ctx context.Context, sessionID, requestedNumber string, info CustomerInfo) (HandoffDTO, error)
}

// ServiceParams carries the dependencies for NewService.
type ServiceParams struct {
	Profile   Profile
	Carts     Carts
	Discounts DiscountStore
	Orders    OrderWriter
	Numbers   *NumberSource
	Links     Linker
	Metrics   *metrics.CheckoutMetrics
	Logger    *logger.Logger
	Checkout  config.CheckoutConfig
}

type service struct {
	profile   Profile
	carts     Carts
	discounts DiscountStore
	orders    OrderWriter
	numbers   *NumberSource
	links     Linker
	metrics   *metrics.CheckoutMetrics
	logg      *logger.Logger
	cfg       config.CheckoutConfig

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewService validates dependencies and returns a checkout Service.
func NewService(params ServiceParams) (Service, error) {
	if params.Profile.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "checkout: profile is required")
	}
	if params.Carts == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "checkout: carts is required")
	}
	if params.Discounts == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "checkout: discount store is required")
	}
	if params.Orders == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "checkout: order writer is required")
	}
	if params.Numbers == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "checkout: number source is required")
	}
	if params.Links == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "checkout: link builder is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "checkout: logger is required")
	}
	return &service{
		profile:   params.Profile,
		carts:     params.Carts,
		discounts: params.Discounts,
		orders:    params.Orders,
		numbers:   params.Numbers,
		links:     params.Links,
		metrics:   params.Metrics,
		logg:      params.Logger,
		cfg:       params.Checkout,
		inFlight:  make(map[string]bool),
	}, nil
}

// Quote prices the session's cart against a delivery method. An empty
// method quotes items only, so the form can show a running subtotal
// before the customer picks delivery.
func (s *service) Quote(ctx context.Context, sessionID, deliveryMethod string) (pricing.Quote, error) {
	items := s.carts.Items(sessionID)

	var method enums.DeliveryMethod
	if trimmed := strings.TrimSpace(deliveryMethod); trimmed != "" {
		parsed, err := enums.ParseDeliveryMethod(trimmed)
		if err != nil {
			return pricing.Quote{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown delivery method")
		}
		if !s.profile.AllowsDeliveryMethod(parsed) {
			return pricing.Quote{}, pkgerrors.New(pkgerrors.CodeValidation, "delivery method not offered")
		}
		method = parsed
	}

	discount, err := s.discounts.Peek(ctx, sessionID)
	if err != nil {
		return pricing.Quote{}, err
	}
	return pricing.BuildQuote(items, method, discount), nil
}

// ValidateCustomer runs the configured profile over the form.
func (s *service) ValidateCustomer(info CustomerInfo) map[string]string {
	return s.profile.Validate(info)
}

// Handoff persists the order and only then builds the WhatsApp link.
// A failed write aborts the whole hand-off; the pending discount and the
// reserved order number survive so the customer can retry.
func (s *service) Handoff(ctx context.Context, sessionID, requestedNumber string, info CustomerInfo) (HandoffDTO, error) {
	if !s.begin(sessionID) {
		return HandoffDTO{}, pkgerrors.New(pkgerrors.CodeStateConflict, "checkout already in progress")
	}
	defer s.end(sessionID)

	if fieldErrors := s.profile.Validate(info); len(fieldErrors) > 0 {
		return HandoffDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid customer details").
			WithDetails(fieldErrors)
	}
	method, err := enums.ParseDeliveryMethod(strings.TrimSpace(info.DeliveryMethod))
	if err != nil {
		return HandoffDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown delivery method")
	}

	items := s.carts.Items(sessionID)
	if len(items) == 0 {
		return HandoffDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	orderNumber, err := s.numbers.Ensure(ctx, sessionID, requestedNumber)
	if err != nil {
		return HandoffDTO{}, err
	}
	ctx = s.logg.WithOrderNumber(ctx, orderNumber)

	discount, err := s.discounts.Peek(ctx, sessionID)
	if err != nil {
		return HandoffDTO{}, err
	}
	quote := pricing.BuildQuote(items, method, discount)

	order, err := s.orders.Create(ctx, orders.CreateOrderInput{
		OrderNumber: orderNumber,
		Customer: orders.CustomerInput{
			FirstName:      info.FirstName,
			LastName:       info.LastName,
			Email:          info.Email,
			Phone:          info.Phone,
			Street:         info.Street,
			PostalCode:     info.PostalCode,
			City:           info.City,
			Country:        info.Country,
			DeliveryMethod: method,
		},
		Items: items,
		Quote: quote,
	})
	if err != nil {
		s.metrics.IncPersistenceFailure()
		s.logg.Error(ctx, "order persistence failed, aborting hand-off", err)
		return HandoffDTO{}, err
	}
	s.metrics.IncOrdersPersisted()

	// The order row exists now; the discount is spent even if the
	// cleanup below fails.
	if err := s.discounts.Clear(ctx, sessionID); err != nil {
		s.logg.Warn(ctx, "failed to clear pending discount after persistence")
	}
	if err := s.numbers.Release(ctx, sessionID); err != nil {
		s.logg.Warn(ctx, "failed to release order number reservation")
	}

	message := whatsapp.Compose(s.toMessage(order, quote, info, method))
	link := s.links.Link(message)
	s.metrics.IncHandoffsBuilt()
	s.logg.Info(ctx, "hand-off link built")

	s.scheduleCartClear(sessionID)

	return HandoffDTO{
		OrderNumber:     order.OrderNumber,
		WhatsAppURL:     link,
		Message:         message,
		Quote:           quote,
		CartClearPolicy: s.cfg.CartClearPolicy,
		CartClearDelay:  s.cfg.HandoffClearDelay,
	}, nil
}

func (s *service) toMessage(order orders.OrderDTO, quote pricing.Quote, info CustomerInfo, method enums.DeliveryMethod) whatsapp.OrderMessage {
	lines := make([]whatsapp.OrderLine, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, whatsapp.OrderLine{
			Name:      item.Name,
			Size:      item.Size,
			Color:     item.Color,
			Quantity:  item.Quantity,
			LineTotal: item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))),
		})
	}

	msg := whatsapp.OrderMessage{
		OrderNumber:   order.OrderNumber,
		CustomerName:  order.CustomerName,
		Email:         info.Email,
		Phone:         info.Phone,
		Street:        info.Street,
		PostalCode:    info.PostalCode,
		City:          info.City,
		Country:       info.Country,
		Items:         lines,
		Subtotal:      quote.Subtotal,
		DeliveryFee:   quote.DeliveryFee,
		Total:         quote.Total,
		DeliveryLabel: method.Label(),
	}
	if quote.Discount != nil {
		amount := quote.Discount.Amount
		msg.DiscountCode = quote.Discount.Code
		msg.DiscountAmount = &amount
	}
	return msg
}

func (s *service) scheduleCartClear(sessionID string) {
	if s.cfg.CartClearPolicy != enums.ClearAfterHandoffDelay {
		return
	}
	delay := s.cfg.HandoffClearDelay
	if delay <= 0 {
		s.carts.Clear(sessionID)
		return
	}
	time.AfterFunc(delay, func() {
		s.carts.Clear(sessionID)
	})
}

func (s *service) begin(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[sessionID] {
		return false
	}
	s.inFlight[sessionID] = true
	return true
}

func (s *service) end(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, sessionID)
}

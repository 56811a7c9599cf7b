package orders

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/elitecorner/storefront-backend/internal/cart"
	"github.com/elitecorner/storefront-backend/pkg/db/models"
	pkgerrors "github.com/elitecorner/storefront-backend/pkg/errors"
	"github.com/elitecorner/storefront-backend/pkg/logger"
)

// Store is the persistence surface the service depends on.
type Store interface {
	Create(ctx context.Context, order *models.Order) error
	FindByNumber(ctx context.Context, orderNumber string) (models.Order, error)
}

// Service persists checkout orders and looks them up by order number.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (OrderDTO, error)
	GetByNumber(ctx context.Context, orderNumber string) (OrderDTO, error)
}

// ServiceParams carries the dependencies for NewService.
type ServiceParams struct {
	Repo   Store
	Logger *logger.Logger
}

type service struct {
	repo Store
	logg *logger.Logger
}

// NewService validates dependencies and returns an order Service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "orders: repo is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "orders: logger is required")
	}
	return &service{repo: params.Repo, logg: params.Logger}, nil
}

func (s *service) Create(ctx context.Context, input CreateOrderInput) (OrderDTO, error) {
	if input.OrderNumber == "" {
		return OrderDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "order number is required")
	}
	if len(input.Items) == 0 {
		return OrderDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "order has no items")
	}

	order := models.Order{
		OrderNumber:    input.OrderNumber,
		CustomerName:   customerName(input.Customer),
		Email:          input.Customer.Email,
		Phone:          input.Customer.Phone,
		Street:         input.Customer.Street,
		PostalCode:     input.Customer.PostalCode,
		City:           input.Customer.City,
		Country:        input.Customer.Country,
		DeliveryMethod: input.Customer.DeliveryMethod,
		Subtotal:       input.Quote.Subtotal,
		DeliveryFee:    input.Quote.DeliveryFee,
		Total:          input.Quote.Total,
		Items:          toOrderItems(input.Items),
	}
	if input.Quote.Discount != nil {
		code := input.Quote.Discount.Code
		amount := input.Quote.Discount.Amount
		order.DiscountCode = &code
		order.DiscountAmount = &amount
	}

	if err := s.repo.Create(ctx, &order); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "order number already used")
		}
		return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to persist order")
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"order_number": order.OrderNumber,
		"items":        len(order.Items),
		"total":        order.Total.StringFixed(2),
	})
	s.logg.Info(logCtx, "order persisted")

	return toOrderDTO(order), nil
}

func (s *service) GetByNumber(ctx context.Context, orderNumber string) (OrderDTO, error) {
	order, err := s.repo.FindByNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
		}
		return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load order")
	}
	return toOrderDTO(order), nil
}

func customerName(c CustomerInput) string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

func toOrderItems(items []cart.Item) []models.OrderItem {
	out := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		out = append(out, models.OrderItem{
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Name:      item.Name,
			Size:      item.Size,
			Color:     item.Color,
			UnitPrice: item.EffectiveUnitPrice(),
			Quantity:  item.Quantity,
			ImageURL:  item.ImageURL,
		})
	}
	return out
}

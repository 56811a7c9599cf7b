package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/elitecorner/storefront-backend/internal/cart"
	"github.com/elitecorner/storefront-backend/internal/pricing"
	"github.com/elitecorner/storefront-backend/pkg/db/models"
	"github.com/elitecorner/storefront-backend/pkg/enums"
)

// CustomerInput carries the validated customer and delivery details for an
// order. Validation happens upstream; this package persists what it is given.
type CustomerInput struct {
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	Street         string
	PostalCode     string
	City           string
	Country        string
	DeliveryMethod enums.DeliveryMethod
}

// CreateOrderInput is everything needed to persist an order snapshot.
type CreateOrderInput struct {
	OrderNumber string
	Customer    CustomerInput
	Items       []cart.Item
	Quote       pricing.Quote
}

// OrderItemDTO is the API shape of a single order line.
type OrderItemDTO struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"productId"`
	VariantID *uuid.UUID      `json:"variantId,omitempty"`
	Name      string          `json:"name"`
	Size      *string         `json:"size,omitempty"`
	Color     *string         `json:"color,omitempty"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	ImageURL  *string         `json:"imageUrl,omitempty"`
}

// OrderDTO is the API shape of a persisted order.
type OrderDTO struct {
	ID             uuid.UUID            `json:"id"`
	OrderNumber    string               `json:"orderNumber"`
	Status         enums.OrderStatus    `json:"status"`
	CustomerName   string               `json:"customerName"`
	Email          string               `json:"email"`
	Phone          string               `json:"phone"`
	Street         string               `json:"street"`
	PostalCode     string               `json:"postalCode"`
	City           string               `json:"city"`
	Country        string               `json:"country"`
	DeliveryMethod enums.DeliveryMethod `json:"deliveryMethod"`
	Subtotal       decimal.Decimal      `json:"subtotal"`
	DeliveryFee    decimal.Decimal      `json:"deliveryFee"`
	DiscountCode   *string              `json:"discountCode,omitempty"`
	DiscountAmount *decimal.Decimal     `json:"discountAmount,omitempty"`
	Total          decimal.Decimal      `json:"total"`
	Items          []OrderItemDTO       `json:"items"`
	CreatedAt      time.Time            `json:"createdAt"`
}

func toOrderDTO(order models.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemDTO{
			ID:        item.ID,
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Name:      item.Name,
			Size:      item.Size,
			Color:     item.Color,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			ImageURL:  item.ImageURL,
		})
	}
	return OrderDTO{
		ID:             order.ID,
		OrderNumber:    order.OrderNumber,
		Status:         order.Status,
		CustomerName:   order.CustomerName,
		Email:          order.Email,
		Phone:          order.Phone,
		Street:         order.Street,
		PostalCode:     order.PostalCode,
		City:           order.City,
		Country:        order.Country,
		DeliveryMethod: order.DeliveryMethod,
		Subtotal:       order.Subtotal,
		DeliveryFee:    order.DeliveryFee,
		DiscountCode:   order.DiscountCode,
		DiscountAmount: order.DiscountAmount,
		Total:          order.Total,
		Items:          items,
		CreatedAt:      order.CreatedAt,
	}
}

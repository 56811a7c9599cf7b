package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/elitecorner/storefront-backend/pkg/enums"
)

// Order is the persisted record handed to staff over the messaging
// channel. Immutable once created; status moves through manual fulfilment.
type Order struct {
	ID             uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber    string               `gorm:"column:order_number;not null;uniqueIndex:orders_order_number_key"`
	Status         enums.OrderStatus    `gorm:"column:status;not null;default:'pending'"`
	CustomerName   string               `gorm:"column:customer_name;not null"`
	Email          string               `gorm:"column:email;not null"`
	Phone          string               `gorm:"column:phone;not null"`
	Street         string               `gorm:"column:street;not null"`
	PostalCode     string               `gorm:"column:postal_code;not null"`
	City           string               `gorm:"column:city;not null"`
	Country        string               `gorm:"column:country;not null"`
	DeliveryMethod enums.DeliveryMethod `gorm:"column:delivery_method;not null"`
	Subtotal       decimal.Decimal      `gorm:"column:subtotal;type:numeric(10,2);not null"`
	DeliveryFee    decimal.Decimal      `gorm:"column:delivery_fee;type:numeric(10,2);not null"`
	DiscountCode   *string              `gorm:"column:discount_code"`
	DiscountAmount *decimal.Decimal     `gorm:"column:discount_amount;type:numeric(10,2)"`
	Total          decimal.Decimal      `gorm:"column:total;type:numeric(10,2);not null"`
	Items          []OrderItem          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderItem snapshots one cart line at the moment of checkout.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index:order_items_order_id_idx"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	VariantID *uuid.UUID      `gorm:"column:variant_id;type:uuid"`
	Name      string          `gorm:"column:name;not null"`
	Size      *string         `gorm:"column:size"`
	Color     *string         `gorm:"column:color"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(10,2);not null"`
	Quantity  int             `gorm:"column:quantity;not null"`
	ImageURL  *string         `gorm:"column:image_url"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}

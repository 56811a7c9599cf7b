package orders

import (
	"context"

	"gorm.io/gorm"

	"github.com/elitecorner/storefront-backend/pkg/db/models"
)

// Repository encapsulates order persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an order repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create writes the order and its items in one transaction. The record is
// immutable once written; there is no partial-success state.
func (r *Repository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
}

// FindByNumber loads an order and its items by order number.
func (r *Repository) FindByNumber(ctx context.Context, orderNumber string) (models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("order_number = ?", orderNumber).
		First(&order).
		Error
	return order, err
}

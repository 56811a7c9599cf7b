package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductVariant is one size/color combination of a product. Price
// overrides the product base price when set; StockZero is advisory
// display state, not an inventory ledger.
type ProductVariant struct {
	ID        uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID        `gorm:"column:product_id;type:uuid;not null;index:product_variants_product_id_idx"`
	Size      *string          `gorm:"column:size"`
	Color     *string          `gorm:"column:color"`
	ColorHex  *string          `gorm:"column:color_hex"`
	Price     *decimal.Decimal `gorm:"column:price;type:numeric(10,2)"`
	StockZero bool             `gorm:"column:stock_zero;not null;default:false"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

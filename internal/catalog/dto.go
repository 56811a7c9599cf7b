package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/elitecorner/storefront-backend/pkg/db/models"
)

// ProductDTO is the full product payload for detail pages.
type ProductDTO struct {
	ID              uuid.UUID              `json:"id"`
	Slug            string                 `json:"slug"`
	Name            string                 `json:"name"`
	Description     *string                `json:"description,omitempty"`
	Price           decimal.Decimal        `json:"price"`
	DiscountedPrice *decimal.Decimal       `json:"discounted_price,omitempty"`
	Images          []string               `json:"images"`
	IsFeatured      bool                   `json:"is_featured"`
	Variants        []VariantDTO           `json:"variants"`
	Sizes           []string               `json:"sizes"`
	Colors          []string               `json:"colors"`
	Collections     []CollectionSummaryDTO `json:"collections,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// VariantDTO is one selectable size/color combination.
type VariantDTO struct {
	ID        uuid.UUID        `json:"id"`
	Size      *string          `json:"size,omitempty"`
	Color     *string          `json:"color,omitempty"`
	ColorHex  *string          `json:"color_hex,omitempty"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	StockZero bool             `json:"stock_zero"`
}

// ResolvedVariantDTO is the resolver result served to product pages: the
// selected variant plus the price and availability it implies.
type ResolvedVariantDTO struct {
	Variant   *VariantDTO     `json:"variant,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	InStock   bool            `json:"in_stock"`
}

// ProductSummaryDTO is the grid/list projection.
type ProductSummaryDTO struct {
	ID              uuid.UUID        `json:"id"`
	Slug            string           `json:"slug"`
	Name            string           `json:"name"`
	Price           decimal.Decimal  `json:"price"`
	DiscountedPrice *decimal.Decimal `json:"discounted_price,omitempty"`
	ThumbnailURL    *string          `json:"thumbnail_url,omitempty"`
	HasVariants     bool             `json:"has_variants"`
	CreatedAt       time.Time        `json:"created_at"`
}

// CollectionSummaryDTO identifies a collection on product payloads.
type CollectionSummaryDTO struct {
	ID   uuid.UUID `json:"id"`
	Slug string    `json:"slug"`
	Name string    `json:"name"`
}

// CollectionPageDTO is a category page: the collection plus its products.
type CollectionPageDTO struct {
	Collection CollectionSummaryDTO `json:"collection"`
	Products   []ProductSummaryDTO  `json:"products"`
}

func toProductDTO(product models.Product) ProductDTO {
	variants := make([]VariantDTO, 0, len(product.Variants))
	for _, v := range product.Variants {
		variants = append(variants, toVariantDTO(v))
	}

	collections := make([]CollectionSummaryDTO, 0, len(product.Collections))
	for _, c := range product.Collections {
		collections = append(collections, CollectionSummaryDTO{ID: c.ID, Slug: c.Slug, Name: c.Name})
	}

	return ProductDTO{
		ID:              product.ID,
		Slug:            product.Slug,
		Name:            product.Name,
		Description:     product.Description,
		Price:           product.Price,
		DiscountedPrice: product.DiscountedPrice,
		Images:          product.Images,
		IsFeatured:      product.IsFeatured,
		Variants:        variants,
		Sizes:           VariantSizes(product.Variants),
		Colors:          VariantColors(product.Variants),
		Collections:     collections,
		CreatedAt:       product.CreatedAt,
		UpdatedAt:       product.UpdatedAt,
	}
}

func toVariantDTO(variant models.ProductVariant) VariantDTO {
	return VariantDTO{
		ID:        variant.ID,
		Size:      variant.Size,
		Color:     variant.Color,
		ColorHex:  variant.ColorHex,
		Price:     variant.Price,
		StockZero: variant.StockZero,
	}
}

func toProductSummaryDTO(product models.Product) ProductSummaryDTO {
	var thumbnail *string
	if len(product.Images) > 0 {
		first := product.Images[0]
		thumbnail = &first
	}
	return ProductSummaryDTO{
		ID:              product.ID,
		Slug:            product.Slug,
		Name:            product.Name,
		Price:           product.Price,
		DiscountedPrice: product.DiscountedPrice,
		ThumbnailURL:    thumbnail,
		HasVariants:     len(product.Variants) > 0,
		CreatedAt:       product.CreatedAt,
	}
}

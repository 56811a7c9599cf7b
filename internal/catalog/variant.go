package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/elitecorner/storefront-backend/pkg/db/models"
)

// ResolveVariant selects the variant matching the requested size/color
// pair. First match wins, in order:
//
//  1. exact match on size and color
//  2. size alone, when no color was requested
//  3. color alone, when no size was requested
//  4. size alone regardless of color (the requested color may have no
//     stock in that size)
//
// When nothing matches the caller's current selection is returned
// unchanged; a miss is not an error.
func ResolveVariant(variants []models.ProductVariant, size, color string, current *models.ProductVariant) *models.ProductVariant {
	for i := range variants {
		if strVal(variants[i].Size) == size && strVal(variants[i].Color) == color {
			return &variants[i]
		}
	}
	if color == "" {
		for i := range variants {
			if strVal(variants[i].Size) == size {
				return &variants[i]
			}
		}
	}
	if size == "" {
		for i := range variants {
			if strVal(variants[i].Color) == color {
				return &variants[i]
			}
		}
	}
	for i := range variants {
		if strVal(variants[i].Size) == size {
			return &variants[i]
		}
	}
	return current
}

// UnitPrice resolves the display price: the variant price when present and
// nonzero, otherwise the product base price.
func UnitPrice(product models.Product, variant *models.ProductVariant) decimal.Decimal {
	if variant != nil && variant.Price != nil && variant.Price.IsPositive() {
		return *variant.Price
	}
	return product.Price
}

// VariantSizes returns the distinct non-empty sizes in list order.
func VariantSizes(variants []models.ProductVariant) []string {
	return uniqueValues(variants, func(v models.ProductVariant) string { return strVal(v.Size) })
}

// VariantColors returns the distinct non-empty colors in list order.
func VariantColors(variants []models.ProductVariant) []string {
	return uniqueValues(variants, func(v models.ProductVariant) string { return strVal(v.Color) })
}

func uniqueValues(variants []models.ProductVariant, pick func(models.ProductVariant) string) []string {
	seen := make(map[string]struct{}, len(variants))
	var out []string
	for _, v := range variants {
		value := pick(v)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}

func strVal(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

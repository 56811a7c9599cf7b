package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/elitecorner/storefront-backend/pkg/db/models"
)

// SearchLimit bounds site-search results.
const SearchLimit = 50

// Repository encapsulates catalog persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindBySlug loads one active product with variants and collections.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_variants.created_at ASC")
		}).
		Preload("Collections").
		Where("slug = ? AND is_active = ?", slug, true).
		First(&product).
		Error
	return product, err
}

// FindByID loads one active product with variants.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_variants.created_at ASC")
		}).
		Where("id = ? AND is_active = ?", id, true).
		First(&product).
		Error
	return product, err
}

// ListByCollection returns the active products of a collection, newest first.
func (r *Repository) ListByCollection(ctx context.Context, collectionSlug string) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Joins("JOIN collection_products cp ON cp.product_id = products.id").
		Joins("JOIN collections c ON c.id = cp.collection_id").
		Where("c.slug = ? AND products.is_active = ?", collectionSlug, true).
		Order("products.created_at DESC").
		Preload("Variants").
		Find(&products).
		Error
	return products, err
}

// FindCollectionBySlug loads one collection.
func (r *Repository) FindCollectionBySlug(ctx context.Context, slug string) (models.Collection, error) {
	var collection models.Collection
	err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&collection).
		Error
	return collection, err
}

// CollectionNamesBySlug resolves the given slugs to display names.
func (r *Repository) CollectionNamesBySlug(ctx context.Context, slugs []string) (map[string]string, error) {
	if len(slugs) == 0 {
		return map[string]string{}, nil
	}

	var rows []models.Collection
	err := r.db.WithContext(ctx).
		Select("slug", "name").
		Where("slug IN ?", slugs).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(rows))
	for _, row := range rows {
		names[row.Slug] = row.Name
	}
	return names, nil
}

// Search matches active products on name, description or collection name,
// case-insensitive, newest first. The limit is clamped to SearchLimit. The
// LOWER(...) LIKE form keeps the query portable across postgres and sqlite.
func (r *Repository) Search(ctx context.Context, query string, limit int) ([]models.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if limit <= 0 || limit > SearchLimit {
		limit = SearchLimit
	}
	pattern := "%" + strings.ToLower(query) + "%"

	var products []models.Product
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Distinct("products.*").
		Joins("LEFT JOIN collection_products cp ON cp.product_id = products.id").
		Joins("LEFT JOIN collections c ON c.id = cp.collection_id").
		Where("products.is_active = ?", true).
		Where("LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ? OR LOWER(c.name) LIKE ?", pattern, pattern, pattern).
		Order("products.created_at DESC").
		Limit(limit).
		Preload("Variants").
		Find(&products).
		Error
	return products, err
}

package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/elitecorner/storefront-backend/pkg/db/models"
	pkgerrors "github.com/elitecorner/storefront-backend/pkg/errors"
)

// Reader is the catalog query surface consumed by other services.
type Reader interface {
	FindBySlug(ctx context.Context, slug string) (models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (models.Product, error)
	ListByCollection(ctx context.Context, collectionSlug string) ([]models.Product, error)
	FindCollectionBySlug(ctx context.Context, slug string) (models.Collection, error)
	CollectionNamesBySlug(ctx context.Context, slugs []string) (map[string]string, error)
	Search(ctx context.Context, query string, limit int) ([]models.Product, error)
}

// Service exposes the storefront catalog operations.
type Service interface {
	GetProduct(ctx context.Context, slug string) (ProductDTO, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (models.Product, error)
	ResolveProductVariant(ctx context.Context, slug, size, color string) (ResolvedVariantDTO, error)
	GetCollectionPage(ctx context.Context, slug string) (CollectionPageDTO, error)
	Search(ctx context.Context, query string, limit int) ([]ProductSummaryDTO, error)
}

type service struct {
	repo Reader
}

// NewService builds a catalog service with the required dependencies.
func NewService(repo Reader) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog repo is required")
	}
	return &service{repo: repo}, nil
}

// GetProduct returns the full detail payload for an active product.
func (s *service) GetProduct(ctx context.Context, slug string) (ProductDTO, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return ProductDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "product slug is required")
	}

	product, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProductDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return ProductDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return toProductDTO(product), nil
}

// GetProductByID returns the raw product record, used by cart snapshots.
func (s *service) GetProductByID(ctx context.Context, id uuid.UUID) (models.Product, error) {
	if id == uuid.Nil {
		return models.Product{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return models.Product{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

// ResolveProductVariant runs the variant resolution rules against a
// product's variant set and reports the implied price and availability.
func (s *service) ResolveProductVariant(ctx context.Context, slug, size, color string) (ResolvedVariantDTO, error) {
	product, err := s.repo.FindBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ResolvedVariantDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return ResolvedVariantDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	resolved := ResolveVariant(product.Variants, strings.TrimSpace(size), strings.TrimSpace(color), nil)

	dto := ResolvedVariantDTO{
		UnitPrice: UnitPrice(product, resolved),
		InStock:   resolved == nil || !resolved.StockZero,
	}
	if resolved != nil {
		v := toVariantDTO(*resolved)
		dto.Variant = &v
	}
	return dto, nil
}

// GetCollectionPage returns a collection and its active products, newest
// first.
func (s *service) GetCollectionPage(ctx context.Context, slug string) (CollectionPageDTO, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return CollectionPageDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "collection slug is required")
	}

	collection, err := s.repo.FindCollectionBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CollectionPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "collection not found")
		}
		return CollectionPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load collection")
	}

	products, err := s.repo.ListByCollection(ctx, slug)
	if err != nil {
		return CollectionPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list collection products")
	}

	summaries := make([]ProductSummaryDTO, 0, len(products))
	for _, product := range products {
		summaries = append(summaries, toProductSummaryDTO(product))
	}

	return CollectionPageDTO{
		Collection: CollectionSummaryDTO{ID: collection.ID, Slug: collection.Slug, Name: collection.Name},
		Products:   summaries,
	}, nil
}

// Search runs the bounded site search. A blank query returns no rows.
func (s *service) Search(ctx context.Context, query string, limit int) ([]ProductSummaryDTO, error) {
	products, err := s.repo.Search(ctx, query, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search products")
	}

	summaries := make([]ProductSummaryDTO, 0, len(products))
	for _, product := range products {
		summaries = append(summaries, toProductSummaryDTO(product))
	}
	return summaries, nil
}

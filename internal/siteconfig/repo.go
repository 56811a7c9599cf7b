package siteconfig

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/elitecorner/storefront-backend/pkg/db/models"
)

// Repository encapsulates site-config persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a site-config repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByKey loads one config entry.
func (r *Repository) FindByKey(ctx context.Context, key string) (models.SiteConfig, error) {
	var entry models.SiteConfig
	err := r.db.WithContext(ctx).
		Where("key = ?", key).
		First(&entry).
		Error
	return entry, err
}

// ListBySection returns every entry of a section, key-ascending. An empty
// section returns all entries.
func (r *Repository) ListBySection(ctx context.Context, section string) ([]models.SiteConfig, error) {
	query := r.db.WithContext(ctx).Model(&models.SiteConfig{})
	if section != "" {
		query = query.Where("section = ?", section)
	}

	var entries []models.SiteConfig
	err := query.Order("key ASC").Find(&entries).Error
	return entries, err
}

// Upsert inserts or updates the entry keyed by its config key.
func (r *Repository) Upsert(ctx context.Context, entry *models.SiteConfig) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "type", "section", "description", "updated_at"}),
		}).
		Create(entry).
		Error
}

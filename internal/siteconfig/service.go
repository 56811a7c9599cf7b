package siteconfig

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/elitecorner/storefront-backend/pkg/db/models"
	pkgerrors "github.com/elitecorner/storefront-backend/pkg/errors"
	"github.com/elitecorner/storefront-backend/pkg/logger"
	"github.com/elitecorner/storefront-backend/pkg/redis"
)

// Store is the query surface for entries persisted in the database.
type Store interface {
	FindByKey(ctx context.Context, key string) (models.SiteConfig, error)
	ListBySection(ctx context.Context, section string) ([]models.SiteConfig, error)
	Upsert(ctx context.Context, entry *models.SiteConfig) error
}

// Cache is the subset of the redis client used for read-through caching.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	SiteConfigKey(configKey string) string
}

// EntryDTO is one config row returned to clients.
type EntryDTO struct {
	Key         string  `json:"key"`
	Value       string  `json:"value"`
	Type        string  `json:"type"`
	Section     string  `json:"section"`
	Description *string `json:"description,omitempty"`
}

// ServiceParams groups dependencies for the site-config service.
type ServiceParams struct {
	Repo     Store
	Cache    Cache
	CacheTTL time.Duration
	Logger   *logger.Logger
}

// Service exposes cached access to runtime site configuration.
type Service interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Section(ctx context.Context, section string) ([]EntryDTO, error)
	Set(ctx context.Context, key, value, entryType, section string, description *string) (EntryDTO, error)
}

type service struct {
	repo     Store
	cache    Cache
	cacheTTL time.Duration
	logg     *logger.Logger
}

// NewService builds a site-config service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "site-config repo is required")
	}
	ttl := params.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &service{
		repo:     params.Repo,
		cache:    params.Cache,
		cacheTTL: ttl,
		logg:     params.Logger,
	}, nil
}

// Get returns the config value for key, serving from the cache when fresh.
// Cache failures degrade to direct reads; they never fail the lookup.
func (s *service) Get(ctx context.Context, key string) (string, bool, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", false, pkgerrors.New(pkgerrors.CodeValidation, "config key is required")
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, s.cache.SiteConfigKey(key))
		if err == nil {
			return cached, true, nil
		}
		if !errors.Is(err, redis.ErrNotFound) && s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "config_key", key), "site-config cache read failed")
		}
	}

	entry, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load site config")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, s.cache.SiteConfigKey(key), entry.Value, s.cacheTTL); err != nil && s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "config_key", key), "site-config cache write failed")
		}
	}

	return entry.Value, true, nil
}

// Section lists every entry of a section.
func (s *service) Section(ctx context.Context, section string) ([]EntryDTO, error) {
	entries, err := s.repo.ListBySection(ctx, strings.TrimSpace(section))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list site configs")
	}

	dtos := make([]EntryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, toEntryDTO(entry))
	}
	return dtos, nil
}

// Set upserts an entry and invalidates its cached value.
func (s *service) Set(ctx context.Context, key, value, entryType, section string, description *string) (EntryDTO, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return EntryDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "config key is required")
	}
	if entryType == "" {
		entryType = "text"
	}
	if section == "" {
		section = "general"
	}

	entry := models.SiteConfig{
		Key:         key,
		Value:       value,
		Type:        entryType,
		Section:     section,
		Description: description,
	}
	if err := s.repo.Upsert(ctx, &entry); err != nil {
		return EntryDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save site config")
	}

	if s.cache != nil {
		if err := s.cache.Del(ctx, s.cache.SiteConfigKey(key)); err != nil && s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "config_key", key), "site-config cache invalidation failed")
		}
	}

	return toEntryDTO(entry), nil
}

func toEntryDTO(entry models.SiteConfig) EntryDTO {
	return EntryDTO{
		Key:         entry.Key,
		Value:       entry.Value,
		Type:        entry.Type,
		Section:     entry.Section,
		Description: entry.Description,
	}
}

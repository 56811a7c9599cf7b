package models

import (
	"time"

	"github.com/google/uuid"
)

// SiteConfig is one key/value entry of the runtime site configuration
// (hero copy, navigation menus, announcement bar, ...).
type SiteConfig struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Key         string    `gorm:"column:key;not null;uniqueIndex:site_configs_key_key"`
	Value       string    `gorm:"column:value;not null"`
	Type        string    `gorm:"column:type;not null;default:'text'"`
	Section     string    `gorm:"column:section;not null;default:'general'"`
	Description *string   `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

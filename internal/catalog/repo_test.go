package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/elitecorner/storefront-backend/pkg/db/models"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{`
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  slug TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  description TEXT,
  price NUMERIC NOT NULL,
  discounted_price NUMERIC,
  images TEXT NOT NULL DEFAULT '{}',
  is_active INTEGER NOT NULL DEFAULT 1,
  is_featured INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS product_variants (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  size TEXT,
  color TEXT,
  color_hex TEXT,
  price NUMERIC,
  stock_zero INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS collections (
  id TEXT PRIMARY KEY,
  slug TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  description TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS collection_products (
  collection_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  created_at DATETIME,
  PRIMARY KEY (collection_id, product_id)
);`}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, slug, name string, active bool) models.Product {
	t.Helper()

	product := models.Product{
		ID:       uuid.New(),
		Slug:     slug,
		Name:     name,
		Price:    decimal.NewFromFloat(30),
		Images:   pq.StringArray{},
		IsActive: active,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func TestRepositorySearchMatchesCaseInsensitive(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	seedProduct(t, db, "robe-noire", "Robe Noire", true)
	seedProduct(t, db, "pantalon-beige", "Pantalon Beige", true)

	found, err := repo.Search(context.Background(), "ROBE", 0)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "robe-noire", found[0].Slug)
}

func TestRepositorySearchMatchesDescription(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	desc := "veste en laine douce"
	product := models.Product{
		ID:          uuid.New(),
		Slug:        "veste-hiver",
		Name:        "Veste Hiver",
		Description: &desc,
		Price:       decimal.NewFromFloat(80),
		Images:      pq.StringArray{},
		IsActive:    true,
	}
	require.NoError(t, db.Create(&product).Error)

	found, err := repo.Search(context.Background(), "Laine", 0)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "veste-hiver", found[0].Slug)
}

func TestRepositorySearchMatchesCollectionName(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	product := seedProduct(t, db, "sac-cuir", "Sac Cuir", true)
	collection := models.Collection{ID: uuid.New(), Slug: "nouveautes", Name: "Nouveautes"}
	require.NoError(t, db.Create(&collection).Error)
	link := models.CollectionProduct{CollectionID: collection.ID, ProductID: product.ID}
	require.NoError(t, db.Create(&link).Error)

	found, err := repo.Search(context.Background(), "nouveau", 0)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "sac-cuir", found[0].Slug)
}

func TestRepositorySearchSkipsInactive(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	seedProduct(t, db, "robe-archivee", "Robe Archivee", false)

	found, err := repo.Search(context.Background(), "robe", 0)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestRepositorySearchBlankQueryReturnsNothing(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	seedProduct(t, db, "robe-noire", "Robe Noire", true)

	found, err := repo.Search(context.Background(), "   ", 10)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestRepositorySearchHonorsLimit(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	seedProduct(t, db, "robe-a", "Robe A", true)
	seedProduct(t, db, "robe-b", "Robe B", true)
	seedProduct(t, db, "robe-c", "Robe C", true)

	found, err := repo.Search(context.Background(), "robe", 2)
	require.NoError(t, err)
	assert.Len(t, found, 2)

	all, err := repo.Search(context.Background(), "robe", SearchLimit+1)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

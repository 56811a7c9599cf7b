package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/elitecorner/storefront-backend/internal/catalog"
	"github.com/elitecorner/storefront-backend/pkg/db/models"
	"github.com/elitecorner/storefront-backend/pkg/logger"
)

type stubCatalogService struct {
	results     []catalog.ProductSummaryDTO
	gotQuery    string
	gotLimit    int
	searchCalls int
}

func (s *stubCatalogService) GetProduct(context.Context, string) (catalog.ProductDTO, error) {
	return catalog.ProductDTO{}, nil
}

func (s *stubCatalogService) GetProductByID(context.Context, uuid.UUID) (models.Product, error) {
	return models.Product{}, nil
}

func (s *stubCatalogService) ResolveProductVariant(context.Context, string, string, string) (catalog.ResolvedVariantDTO, error) {
	return catalog.ResolvedVariantDTO{}, nil
}

func (s *stubCatalogService) GetCollectionPage(context.Context, string) (catalog.CollectionPageDTO, error) {
	return catalog.CollectionPageDTO{}, nil
}

func (s *stubCatalogService) Search(_ context.Context, query string, limit int) ([]catalog.ProductSummaryDTO, error) {
	s.searchCalls++
	s.gotQuery = query
	s.gotLimit = limit
	if query == "" {
		return nil, nil
	}
	return s.results, nil
}

type searchEnvelope struct {
	Data struct {
		Items []json.RawMessage `json:"items"`
		Count int               `json:"count"`
	} `json:"data"`
}

func TestSearchProducts(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	makeRequest := func(stub *stubCatalogService, target string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		SearchProducts(stub, logg).ServeHTTP(rec, req)
		return rec
	}

	t.Run("blank query returns empty list", func(t *testing.T) {
		stub := &stubCatalogService{}
		rec := makeRequest(stub, "/api/v1/products/search?q=")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 for blank query, got %d", rec.Code)
		}

		var body searchEnvelope
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if body.Data.Items == nil {
			t.Fatal("expected items to be an empty array, got null")
		}
		if len(body.Data.Items) != 0 || body.Data.Count != 0 {
			t.Fatalf("expected empty result set, got %d items", len(body.Data.Items))
		}
	})

	t.Run("results are counted", func(t *testing.T) {
		stub := &stubCatalogService{results: []catalog.ProductSummaryDTO{
			{ID: uuid.New(), Slug: "robe-noire", Name: "Robe Noire", Price: decimal.NewFromFloat(30)},
		}}
		rec := makeRequest(stub, "/api/v1/products/search?q=robe")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var body searchEnvelope
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if body.Data.Count != 1 || len(body.Data.Items) != 1 {
			t.Fatalf("expected one result, got count=%d items=%d", body.Data.Count, len(body.Data.Items))
		}
		if stub.gotQuery != "robe" {
			t.Fatalf("expected query passed through, got %q", stub.gotQuery)
		}
		if stub.gotLimit != catalog.SearchLimit {
			t.Fatalf("expected default limit %d, got %d", catalog.SearchLimit, stub.gotLimit)
		}
	})

	t.Run("limit override", func(t *testing.T) {
		stub := &stubCatalogService{}
		rec := makeRequest(stub, "/api/v1/products/search?q=robe&limit=5")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if stub.gotLimit != 5 {
			t.Fatalf("expected limit 5, got %d", stub.gotLimit)
		}
	})

	t.Run("non numeric limit rejected", func(t *testing.T) {
		stub := &stubCatalogService{}
		rec := makeRequest(stub, "/api/v1/products/search?q=robe&limit=abc")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for bad limit, got %d", rec.Code)
		}
		if stub.searchCalls != 0 {
			t.Fatal("expected search not to run on invalid limit")
		}
	})

	t.Run("out of range limit rejected", func(t *testing.T) {
		stub := &stubCatalogService{}
		rec := makeRequest(stub, "/api/v1/products/search?q=robe&limit=500")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for oversized limit, got %d", rec.Code)
		}
	})
}

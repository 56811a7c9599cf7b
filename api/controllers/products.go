package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/elitecorner/storefront-backend/api/responses"
	"github.com/elitecorner/storefront-backend/api/validators"
	"github.com/elitecorner/storefront-backend/internal/catalog"
	"github.com/elitecorner/storefront-backend/pkg/logger"
	"github.com/elitecorner/storefront-backend/pkg/types"
)

// GetProduct returns one product with its variants and collections.
func GetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		product, err := svc.GetProduct(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// ResolveProductVariant selects the variant for a size/color pick and
// reports its effective unit price and stock state.
func ResolveProductVariant(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		size := strings.TrimSpace(r.URL.Query().Get("size"))
		color := strings.TrimSpace(r.URL.Query().Get("color"))

		resolved, err := svc.ResolveProductVariant(r.Context(), slug, size, color)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, resolved)
	}
}

// SearchProducts runs a free-text catalog search. A blank query is not an
// error: it yields an empty result set.
func SearchProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))

		limit, err := validators.ParseQueryInt(r, "limit", catalog.SearchLimit, 1, catalog.SearchLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		results, err := svc.Search(r.Context(), query, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if results == nil {
			results = []catalog.ProductSummaryDTO{}
		}

		responses.WriteSuccess(w, types.ListData{Items: results, Count: len(results)})
	}
}

package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/elitecorner/storefront-backend/api/responses"
	"github.com/elitecorner/storefront-backend/internal/catalog"
	"github.com/elitecorner/storefront-backend/pkg/logger"
)

// GetCollection returns a collection and its active products.
func GetCollection(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		page, err := svc.GetCollectionPage(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

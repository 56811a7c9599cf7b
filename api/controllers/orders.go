package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/elitecorner/storefront-backend/api/responses"
	"github.com/elitecorner/storefront-backend/internal/orders"
	"github.com/elitecorner/storefront-backend/pkg/logger"
)

// GetOrder looks up a persisted order by its human-readable number, for
// the confirmation page.
func GetOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderNumber := chi.URLParam(r, "orderNumber")

		order, err := svc.GetByNumber(r.Context(), orderNumber)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

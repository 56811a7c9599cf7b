package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/elitecorner/storefront-backend/api/middleware"
	"github.com/elitecorner/storefront-backend/api/responses"
	"github.com/elitecorner/storefront-backend/api/validators"
	"github.com/elitecorner/storefront-backend/internal/wishlist"
	pkgerrors "github.com/elitecorner/storefront-backend/pkg/errors"
	"github.com/elitecorner/storefront-backend/pkg/logger"
)

// GetWishlist returns the session's saved products.
func GetWishlist(lists *wishlist.Container, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		responses.WriteSuccess(w, lists.Entries(sessionID))
	}
}

type addWishlistRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
}

// AddWishlistItem saves a product. Adding twice is a no-op.
func AddWishlistItem(lists *wishlist.Container, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())

		var payload addWishlistRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := uuid.Parse(payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		if err := lists.Add(sessionID, productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, lists.Entries(sessionID))
	}
}

// RemoveWishlistItem drops a product from the wishlist.
func RemoveWishlistItem(lists *wishlist.Container, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())

		productID, err := uuid.Parse(chi.URLParam(r, "productID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		lists.Remove(sessionID, productID)
		responses.WriteSuccess(w, lists.Entries(sessionID))
	}
}

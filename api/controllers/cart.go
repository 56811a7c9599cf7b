package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/elitecorner/storefront-backend/api/middleware"
	"github.com/elitecorner/storefront-backend/api/responses"
	"github.com/elitecorner/storefront-backend/api/validators"
	"github.com/elitecorner/storefront-backend/internal/cart"
	"github.com/elitecorner/storefront-backend/internal/catalog"
	"github.com/elitecorner/storefront-backend/pkg/db/models"
	pkgerrors "github.com/elitecorner/storefront-backend/pkg/errors"
	"github.com/elitecorner/storefront-backend/pkg/logger"
)

// GetCart returns the session's cart lines.
func GetCart(carts *cart.Container, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		responses.WriteSuccess(w, carts.Items(sessionID))
	}
}

type addCartItemRequest struct {
	ProductID string  `json:"productId" validate:"required,uuid"`
	VariantID *string `json:"variantId,omitempty" validate:"omitempty,uuid"`
	Quantity  int     `json:"quantity" validate:"required,min=1"`
}

// AddCartItem hydrates the line from the catalog and adds it to the
// session cart. Prices are never taken from the client.
func AddCartItem(carts *cart.Container, catalogSvc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := uuid.Parse(payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		product, err := catalogSvc.GetProductByID(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item := cart.Item{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  payload.Quantity,
		}
		if product.DiscountedPrice != nil {
			discounted := *product.DiscountedPrice
			item.DiscountedUnitPrice = &discounted
		}
		if len(product.Images) > 0 {
			image := product.Images[0]
			item.ImageURL = &image
		}

		if payload.VariantID != nil {
			variantID, err := uuid.Parse(*payload.VariantID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid variant id"))
				return
			}
			variant := findVariant(product.Variants, variantID)
			if variant == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "variant not found"))
				return
			}
			if variant.StockZero {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeConflict, "variant is out of stock"))
				return
			}
			item.VariantID = &variant.ID
			item.Size = variant.Size
			item.Color = variant.Color
			item.UnitPrice = catalog.UnitPrice(product, variant)
		}

		if err := carts.Add(sessionID, item); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, carts.Items(sessionID))
	}
}

type updateCartItemRequest struct {
	ProductID string  `json:"productId" validate:"required,uuid"`
	VariantID *string `json:"variantId,omitempty" validate:"omitempty,uuid"`
	Quantity  int     `json:"quantity" validate:"min=0"`
}

// UpdateCartItem sets a line quantity; zero removes the line.
func UpdateCartItem(carts *cart.Container, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())

		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, variantID, err := parseLineIDs(payload.ProductID, payload.VariantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := carts.SetQuantity(sessionID, productID, variantID, payload.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, carts.Items(sessionID))
	}
}

type removeCartItemRequest struct {
	ProductID string  `json:"productId" validate:"required,uuid"`
	VariantID *string `json:"variantId,omitempty" validate:"omitempty,uuid"`
}

// RemoveCartItem drops one line from the cart.
func RemoveCartItem(carts *cart.Container, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())

		var payload removeCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, variantID, err := parseLineIDs(payload.ProductID, payload.VariantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		carts.Remove(sessionID, productID, variantID)
		responses.WriteSuccess(w, carts.Items(sessionID))
	}
}

// ClearCart empties the session cart. The storefront calls this from its
// confirmation-page unload hook when that clear policy is configured.
func ClearCart(carts *cart.Container, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		carts.Clear(sessionID)
		responses.WriteSuccess(w, []cart.Item{})
	}
}

func parseLineIDs(rawProductID string, rawVariantID *string) (uuid.UUID, *uuid.UUID, error) {
	productID, err := uuid.Parse(rawProductID)
	if err != nil {
		return uuid.Nil, nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id")
	}
	if rawVariantID == nil {
		return productID, nil, nil
	}
	variantID, err := uuid.Parse(*rawVariantID)
	if err != nil {
		return uuid.Nil, nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid variant id")
	}
	return productID, &variantID, nil
}

func findVariant(variants []models.ProductVariant, id uuid.UUID) *models.ProductVariant {
	for i := range variants {
		if variants[i].ID == id {
			return &variants[i]
		}
	}
	return nil
}

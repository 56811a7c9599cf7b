package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/elitecorner/storefront-backend/api/middleware"
	"github.com/elitecorner/storefront-backend/api/responses"
	"github.com/elitecorner/storefront-backend/api/validators"
	"github.com/elitecorner/storefront-backend/internal/cart"
	"github.com/elitecorner/storefront-backend/internal/discounts"
	"github.com/elitecorner/storefront-backend/internal/pricing"
	"github.com/elitecorner/storefront-backend/pkg/enums"
	pkgerrors "github.com/elitecorner/storefront-backend/pkg/errors"
	"github.com/elitecorner/storefront-backend/pkg/logger"
)

type applyDiscountRequest struct {
	DiscountID string `json:"discountId" validate:"required"`
	Code       string `json:"code" validate:"required"`
	Type       string `json:"type" validate:"required"`
	Value      string `json:"value" validate:"required"`
}

// ApplyDiscount stores the session's pending discount. The deduction is
// computed here against the current cart so the stored amount is what
// checkout will consume.
func ApplyDiscount(store *discounts.Store, carts *cart.Container, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())

		var payload applyDiscountRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		discountType, err := enums.ParseDiscountType(payload.Type)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid discount type"))
			return
		}
		value, err := decimal.NewFromString(payload.Value)
		if err != nil || value.IsNegative() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid discount value"))
			return
		}

		subtotal := pricing.Subtotal(carts.Items(sessionID))
		amount := value
		if discountType == enums.DiscountTypePercentage {
			amount = subtotal.Mul(value).Div(decimal.NewFromInt(100)).Round(2)
		}

		discount := pricing.Discount{
			DiscountID: payload.DiscountID,
			Code:       payload.Code,
			Type:       discountType,
			Value:      value,
			Amount:     amount,
		}
		if err := store.Put(r.Context(), sessionID, discount); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, discount)
	}
}

// GetPendingDiscount returns the session's pending discount, if any.
func GetPendingDiscount(store *discounts.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())

		discount, err := store.Peek(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, discount)
	}
}

// RemovePendingDiscount drops the session's pending discount.
func RemovePendingDiscount(store *discounts.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())

		if err := store.Clear(r.Context(), sessionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]bool{"removed": true})
	}
}

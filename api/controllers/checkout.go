package controllers

import (
	"net/http"
	"strings"

	"github.com/elitecorner/storefront-backend/api/middleware"
	"github.com/elitecorner/storefront-backend/api/responses"
	"github.com/elitecorner/storefront-backend/api/validators"
	"github.com/elitecorner/storefront-backend/internal/checkout"
	"github.com/elitecorner/storefront-backend/pkg/logger"
)

// CheckoutQuote prices the session cart, optionally against a delivery
// method passed as ?deliveryMethod=.
func CheckoutQuote(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		method := strings.TrimSpace(r.URL.Query().Get("deliveryMethod"))

		quote, err := svc.Quote(r.Context(), sessionID, method)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, quote)
	}
}

type validateCustomerResponse struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}

// CheckoutValidate runs the form rules without persisting anything, so
// the storefront can surface per-field messages as the customer types.
func CheckoutValidate(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload checkout.CustomerInfo
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		fieldErrors := svc.ValidateCustomer(payload)
		responses.WriteSuccess(w, validateCustomerResponse{
			Valid:  len(fieldErrors) == 0,
			Errors: fieldErrors,
		})
	}
}

type handoffRequest struct {
	OrderNumber string                `json:"orderNumber,omitempty"`
	Customer    checkout.CustomerInfo `json:"customer" validate:"required"`
}

type handoffResponse struct {
	OrderNumber      string `json:"orderNumber"`
	WhatsAppURL      string `json:"whatsappUrl"`
	Message          string `json:"message"`
	CartClearPolicy  string `json:"cartClearPolicy"`
	CartClearDelayMS int64  `json:"cartClearDelayMs"`
	Subtotal         string `json:"subtotal"`
	DeliveryFee      string `json:"deliveryFee"`
	DiscountAmount   string `json:"discountAmount,omitempty"`
	Total            string `json:"total"`
}

// CheckoutHandoff persists the order and returns the WhatsApp link.
func CheckoutHandoff(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())

		var payload handoffRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		handoff, err := svc.Handoff(r.Context(), sessionID, payload.OrderNumber, payload.Customer)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp := handoffResponse{
			OrderNumber:      handoff.OrderNumber,
			WhatsAppURL:      handoff.WhatsAppURL,
			Message:          handoff.Message,
			CartClearPolicy:  handoff.CartClearPolicy.String(),
			CartClearDelayMS: handoff.CartClearDelay.Milliseconds(),
			Subtotal:         handoff.Quote.Subtotal.StringFixed(2),
			DeliveryFee:      handoff.Quote.DeliveryFee.StringFixed(2),
			Total:            handoff.Quote.Total.StringFixed(2),
		}
		if handoff.Quote.Discount != nil {
			resp.DiscountAmount = handoff.Quote.Discount.Amount.StringFixed(2)
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, resp)
	}
}

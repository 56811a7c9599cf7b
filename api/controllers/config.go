package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/elitecorner/storefront-backend/api/responses"
	"github.com/elitecorner/storefront-backend/api/validators"
	"github.com/elitecorner/storefront-backend/internal/siteconfig"
	pkgerrors "github.com/elitecorner/storefront-backend/pkg/errors"
	"github.com/elitecorner/storefront-backend/pkg/logger"
)

// GetSiteConfig returns one config value by key. A missing key is a 404
// so the storefront can fall back to its baked-in default.
func GetSiteConfig(svc siteconfig.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")

		value, found, err := svc.Get(r.Context(), key)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !found {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "config key not found"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"key": key, "value": value})
	}
}

// ListSiteConfigSection returns every entry in a section, or all entries
// when no section filter is given.
func ListSiteConfigSection(svc siteconfig.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		section := strings.TrimSpace(r.URL.Query().Get("section"))

		entries, err := svc.Section(r.Context(), section)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, entries)
	}
}

// GetNavigation assembles both storefront menus from config and catalog.
func GetNavigation(svc siteconfig.Service, namer siteconfig.CollectionNamer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		nav, err := siteconfig.Navigation(r.Context(), svc, namer)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, nav)
	}
}

type upsertSiteConfigRequest struct {
	Value       string  `json:"value" validate:"required"`
	Type        string  `json:"type" validate:"required"`
	Section     string  `json:"section" validate:"required"`
	Description *string `json:"description,omitempty"`
}

// UpsertSiteConfig writes a config entry and invalidates its cache.
func UpsertSiteConfig(svc siteconfig.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")

		var payload upsertSiteConfigRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entry, err := svc.Set(r.Context(), key, payload.Value, payload.Type, payload.Section, payload.Description)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, entry)
	}
}

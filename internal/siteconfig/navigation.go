package siteconfig

import (
	"context"
	"encoding/json"

	pkgerrors "github.com/elitecorner/storefront-backend/pkg/errors"
)

const (
	menuMenKey   = "menu_homme"
	menuWomenKey = "menu_femme"
)

// MenuItemDTO is one navigation entry resolved to its collection name.
type MenuItemDTO struct {
	ID             string `json:"id"`
	CollectionSlug string `json:"collection_slug"`
	CollectionName string `json:"collection_name"`
}

// NavigationDTO holds both storefront menus.
type NavigationDTO struct {
	MenuMen   []MenuItemDTO `json:"menu_homme"`
	MenuWomen []MenuItemDTO `json:"menu_femme"`
}

type rawMenuItem struct {
	ID             string `json:"id"`
	CollectionSlug string `json:"collectionSlug"`
}

// CollectionNamer resolves collection slugs to display names.
type CollectionNamer interface {
	CollectionNamesBySlug(ctx context.Context, slugs []string) (map[string]string, error)
}

// Navigation assembles the nav menus from the menu config keys and the
// collection catalog. Menus with no config resolve to empty lists.
func Navigation(ctx context.Context, svc Service, namer CollectionNamer) (NavigationDTO, error) {
	menRaw, err := loadMenu(ctx, svc, menuMenKey)
	if err != nil {
		return NavigationDTO{}, err
	}
	womenRaw, err := loadMenu(ctx, svc, menuWomenKey)
	if err != nil {
		return NavigationDTO{}, err
	}

	slugSet := map[string]struct{}{}
	for _, item := range append(append([]rawMenuItem{}, menRaw...), womenRaw...) {
		slugSet[item.CollectionSlug] = struct{}{}
	}
	slugs := make([]string, 0, len(slugSet))
	for slug := range slugSet {
		slugs = append(slugs, slug)
	}

	names, err := namer.CollectionNamesBySlug(ctx, slugs)
	if err != nil {
		return NavigationDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve menu collections")
	}

	return NavigationDTO{
		MenuMen:   resolveMenu(menRaw, names),
		MenuWomen: resolveMenu(womenRaw, names),
	}, nil
}

func loadMenu(ctx context.Context, svc Service, key string) ([]rawMenuItem, error) {
	value, found, err := svc.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !found || value == "" {
		return nil, nil
	}

	var items []rawMenuItem
	if err := json.Unmarshal([]byte(value), &items); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "parse menu config").WithDetails(map[string]any{"key": key})
	}
	return items, nil
}

func resolveMenu(items []rawMenuItem, names map[string]string) []MenuItemDTO {
	out := make([]MenuItemDTO, 0, len(items))
	for _, item := range items {
		name, ok := names[item.CollectionSlug]
		if !ok {
			// Fall back to the slug so a stale menu entry stays navigable.
			name = item.CollectionSlug
		}
		out = append(out, MenuItemDTO{
			ID:             item.ID,
			CollectionSlug: item.CollectionSlug,
			CollectionName: name,
		})
	}
	return out
}

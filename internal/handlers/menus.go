package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"sppgmenu/internal/catalog"
	"sppgmenu/internal/nutrition"
)

type menuOption struct {
	Ref         string                   `json:"ref"`
	Name        string                   `json:"name"`
	Description string                   `json:"description,omitempty"`
	TargetLevel string                   `json:"target_level"`
	MealType    string                   `json:"meal_type"`
	Status      string                   `json:"status"`
	Item        nutrition.SelectableItem `json:"item"`
}

// AvailableMenus lists the menus the caller's SPPG may add to a selection.
// Query parameters: search, target_level, meal_type, status, exclude
// (comma-separated ids), limit (capped at catalog.MaxListLimit).
func AvailableMenus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if menuLister == nil {
		writeCatalogError(w, r, errCatalogUnavailable)
		return
	}

	sppg := sppgCode(r)
	if sppg == "" {
		writeCatalogError(w, r, errMissingSppg)
		return
	}

	query := r.URL.Query()
	filter := catalog.Filter{
		Search:   query.Get("search"),
		MealType: query.Get("meal_type"),
	}
	if raw := strings.TrimSpace(query.Get("target_level")); raw != "" {
		level, err := nutrition.ParseTargetLevel(raw)
		if err != nil {
			writeCatalogError(w, r, err)
			return
		}
		filter.TargetLevel = level
	}
	status, err := catalog.ParseStatus(query.Get("status"))
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}
	filter.Status = status
	if limit, err := strconv.Atoi(query.Get("limit")); err == nil && limit > 0 {
		filter.Limit = min(limit, catalog.MaxListLimit)
	}
	for _, raw := range strings.Split(query.Get("exclude"), ",") {
		if id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64); err == nil && id > 0 {
			filter.ExcludeIDs = append(filter.ExcludeIDs, uint(id))
		}
	}

	menus, err := menuLister.Available(r.Context(), sppg, filter)
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}

	options := make([]menuOption, 0, len(menus))
	for _, menu := range menus {
		item := catalog.MenuItem(menu)
		options = append(options, menuOption{
			Ref:         item.ID,
			Name:        menu.Name,
			Description: menu.Description,
			TargetLevel: menu.TargetLevel,
			MealType:    menu.MealType,
			Status:      menu.Status,
			Item:        item,
		})
	}
	writeJSON(w, http.StatusOK, options)
}

package handlers

import (
	"context"
	"net/http"
	"strings"

	"sppgmenu/internal/catalog"
	applog "sppgmenu/internal/log"
	"sppgmenu/internal/nutrition"
	"sppgmenu/internal/views/layout"
	"sppgmenu/internal/views/pages"
)

const (
	sessionSelectionRefsKey  = "selection:refs"
	sessionSelectionLevelKey = "selection:level"
	sessionSelectionSppgKey  = "selection:sppg"
)

// selection is a planner's working set, kept in the session so that each
// browser has its own. Refs may repeat: picking a menu twice counts it twice.
type selection struct {
	Sppg  string
	Level nutrition.TargetLevel
	Refs  []catalog.Ref
}

type selectionResponse struct {
	Sppg  string                     `json:"sppg"`
	Level nutrition.TargetLevel      `json:"target_level"`
	Refs  []string                   `json:"refs"`
	Items []nutrition.SelectableItem `json:"items"`
}

func loadSelection(ctx context.Context) selection {
	sel := selection{Level: defaultLevel}
	if sessionManager == nil {
		return sel
	}
	sel.Sppg = sessionManager.GetString(ctx, sessionSelectionSppgKey)
	if level, err := nutrition.ParseTargetLevel(sessionManager.GetString(ctx, sessionSelectionLevelKey)); err == nil {
		sel.Level = level
	}
	for _, raw := range strings.Split(sessionManager.GetString(ctx, sessionSelectionRefsKey), ",") {
		if ref, err := catalog.ParseRef(raw); err == nil {
			sel.Refs = append(sel.Refs, ref)
		}
	}
	return sel
}

func saveSelection(ctx context.Context, sel selection) {
	refs := make([]string, 0, len(sel.Refs))
	for _, ref := range sel.Refs {
		refs = append(refs, ref.String())
	}
	sessionManager.Put(ctx, sessionSelectionSppgKey, sel.Sppg)
	sessionManager.Put(ctx, sessionSelectionLevelKey, string(sel.Level))
	sessionManager.Put(ctx, sessionSelectionRefsKey, strings.Join(refs, ","))
}

func (s selection) refStrings() []string {
	out := make([]string, 0, len(s.Refs))
	for _, ref := range s.Refs {
		out = append(out, ref.String())
	}
	return out
}

// Selection manages the session-scoped selection:
// GET returns it, POST adds refs and/or changes the target level, DELETE
// removes one ref (?ref=) or clears everything.
func Selection(w http.ResponseWriter, r *http.Request) {
	if sessionManager == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "Sessions are not configured.")
		return
	}

	switch r.Method {
	case http.MethodGet:
		respondSelection(w, r, loadSelection(r.Context()))
	case http.MethodPost:
		addToSelection(w, r)
	case http.MethodDelete:
		removeFromSelection(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func addToSelection(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid submission.")
		return
	}

	sel := loadSelection(r.Context())

	if raw := strings.TrimSpace(r.PostFormValue("target_level")); raw != "" {
		level, err := nutrition.ParseTargetLevel(raw)
		if err != nil {
			writeCatalogError(w, r, err)
			return
		}
		sel.Level = level
	}

	refs, err := catalog.ParseRefs(r.PostForm["ref"])
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}

	if code := sppgCode(r); code != "" && code != sel.Sppg {
		if len(sel.Refs) > 0 {
			applog.Info(r.Context(), "selection switched sppg, clearing items", "from", sel.Sppg, "to", code)
		}
		sel.Sppg = code
		sel.Refs = nil
	}

	if len(sel.Refs)+len(refs) > nutrition.MaxItemsPerSelection {
		writeCatalogError(w, r, nutrition.ErrTooManyItems)
		return
	}

	if len(refs) > 0 {
		// Resolve before storing so the session never holds a ref the tenant cannot see.
		if _, err := loadItems(r.Context(), sel.Sppg, refs); err != nil {
			writeCatalogError(w, r, err)
			return
		}
		sel.Refs = append(sel.Refs, refs...)
	}

	saveSelection(r.Context(), sel)
	applog.Debug(r.Context(), "selection updated", "sppg", sel.Sppg, "items", len(sel.Refs), "target_level", string(sel.Level))
	respondSelection(w, r, sel)
}

func removeFromSelection(w http.ResponseWriter, r *http.Request) {
	sel := loadSelection(r.Context())

	raw := strings.TrimSpace(r.URL.Query().Get("ref"))
	if raw == "" {
		sel.Refs = nil
	} else {
		target, err := catalog.ParseRef(raw)
		if err != nil {
			writeCatalogError(w, r, err)
			return
		}
		for i, ref := range sel.Refs {
			if ref == target {
				sel.Refs = append(sel.Refs[:i], sel.Refs[i+1:]...)
				break
			}
		}
	}

	saveSelection(r.Context(), sel)
	respondSelection(w, r, sel)
}

func respondSelection(w http.ResponseWriter, r *http.Request, sel selection) {
	items, err := loadItems(r.Context(), sel.Sppg, sel.Refs)
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}

	if isHTMX(r) {
		renderComponent(w, r, pages.SelectionPanel(pages.SelectionPanelData{
			SppgCode: sel.Sppg,
			Level:    sel.Level,
			Items:    pages.ReportItems(items),
		}))
		return
	}

	writeJSON(w, http.StatusOK, selectionResponse{
		Sppg:  sel.Sppg,
		Level: sel.Level,
		Refs:  sel.refStrings(),
		Items: items,
	})
}

// SelectionEvaluate scores the session selection and returns JSON.
func SelectionEvaluate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	sel := loadSelection(r.Context())
	items, err := loadItems(r.Context(), sel.Sppg, sel.Refs)
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}

	resp, err := evaluate(r, sel.Sppg, items, sel.Level, 0)
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// SelectionReport renders the compliance report for the session selection.
func SelectionReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	sel := loadSelection(r.Context())
	items, err := loadItems(r.Context(), sel.Sppg, sel.Refs)
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}

	resp, err := evaluate(r, sel.Sppg, items, sel.Level, 0)
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}

	report := pages.ComplianceReport(pages.BuildComplianceReport(resp.EvaluationID, sel.Sppg, items, resp.Summary, resp.EvaluatedAt))
	if isHTMX(r) {
		renderComponent(w, r, report)
		return
	}
	renderComponent(w, r, layout.Page("Laporan Kepatuhan AKG", report))
}

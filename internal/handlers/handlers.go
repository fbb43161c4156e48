package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"

	"sppgmenu/internal/catalog"
	applog "sppgmenu/internal/log"
	"sppgmenu/internal/nutrition"
)

const sppgHeader = "X-SPPG-ID"

// Dependencies are the collaborators shared by every handler.
type Dependencies struct {
	Items        catalog.Source
	Menus        catalog.Lister
	DefaultLevel nutrition.TargetLevel
}

var (
	sessionManager  *scs.SessionManager
	itemSource      catalog.Source
	menuLister      catalog.Lister
	defaultLevel    = nutrition.LevelSD
	newEvaluationID = uuid.NewString
	nowFunc         = time.Now

	errCatalogUnavailable = errors.New("handlers: catalog is not configured")
	errMissingSppg        = errors.New("handlers: sppg code is required")
	errInvalidToolParams  = errors.New("handlers: invalid tool parameters")
)

// Configure installs the shared dependencies used by the HTTP handlers.
func Configure(sm *scs.SessionManager, deps Dependencies) {
	sessionManager = sm
	itemSource = deps.Items
	menuLister = deps.Menus
	if deps.DefaultLevel != "" {
		defaultLevel = deps.DefaultLevel
	}
}

// sppgCode reads the tenant from the X-SPPG-ID header, falling back to the
// "sppg" form or query value.
func sppgCode(r *http.Request) string {
	if code := strings.TrimSpace(r.Header.Get(sppgHeader)); code != "" {
		return code
	}
	return strings.TrimSpace(r.FormValue("sppg"))
}

// resolveLevel parses value, using the configured default when blank.
func resolveLevel(value string) (nutrition.TargetLevel, error) {
	if strings.TrimSpace(value) == "" {
		return defaultLevel, nil
	}
	return nutrition.ParseTargetLevel(value)
}

func loadItems(ctx context.Context, sppg string, refs []catalog.Ref) ([]nutrition.SelectableItem, error) {
	if len(refs) == 0 {
		return []nutrition.SelectableItem{}, nil
	}
	if itemSource == nil {
		return nil, errCatalogUnavailable
	}
	if sppg == "" {
		return nil, errMissingSppg
	}
	return itemSource.Load(ctx, sppg, refs)
}

// catalogErrorStatus maps catalog and evaluation failures onto an HTTP status
// and the message shown to the client.
func catalogErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, catalog.ErrInvalidRef), errors.Is(err, catalog.ErrInvalidStatus),
		errors.Is(err, errInvalidToolParams), nutrition.IsValidationError(err):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, nutrition.ErrUnknownTargetLevel):
		return http.StatusBadRequest, "target_level must be one of TK, SD, SMP, SMA"
	case errors.Is(err, errMissingSppg):
		return http.StatusBadRequest, "An SPPG code is required to select catalog items."
	case errors.Is(err, catalog.ErrUnknownSppg), errors.Is(err, catalog.ErrItemNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, errCatalogUnavailable):
		return http.StatusServiceUnavailable, "The menu catalog is unavailable because no database connection is configured."
	default:
		return http.StatusInternalServerError, "We were unable to evaluate the selection. Please try again."
	}
}

func writeCatalogError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := catalogErrorStatus(err)
	if status == http.StatusInternalServerError {
		applog.Error(r.Context(), "catalog request failed", "error", err, "path", r.URL.Path)
	}
	writeJSONError(w, status, message)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(context.Background(), "failed to encode json response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func renderComponent(w http.ResponseWriter, r *http.Request, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render component", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

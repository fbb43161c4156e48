package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	applog "sppgmenu/internal/log"
)

type healthResponse struct {
	Status  string    `json:"status"`
	Catalog string    `json:"catalog"`
	Time    time.Time `json:"time"`
}

// Health is a simple readiness handler suitable for load balancer health checks.
// The evaluation endpoints work without a catalog, so a missing one is
// reported rather than failing the check.
func Health(w http.ResponseWriter, r *http.Request) {
	applog.Debug(r.Context(), "health check requested", "method", r.Method)
	resp := healthResponse{
		Status:  "ok",
		Catalog: "ready",
		Time:    nowFunc().UTC(),
	}
	if itemSource == nil {
		resp.Catalog = "unconfigured"
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		applog.Error(r.Context(), "failed to encode health response", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	applog.Debug(r.Context(), "health check responded successfully")
}

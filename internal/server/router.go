package server

import (
	"context"
	"net/http"

	"sppgmenu/internal/handlers"
	applog "sppgmenu/internal/log"
)

func newRouter() http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")
	mux.HandleFunc("/healthz", handlers.Health)
	applog.Debug(context.Background(), "route registered", "path", "/healthz")
	mux.HandleFunc("/api/nutrition/references", handlers.References)
	applog.Debug(context.Background(), "route registered", "path", "/api/nutrition/references")
	mux.HandleFunc("/api/nutrition/evaluate", handlers.Evaluate)
	applog.Debug(context.Background(), "route registered", "path", "/api/nutrition/evaluate")
	mux.HandleFunc("/api/catalog/menus", handlers.AvailableMenus)
	applog.Debug(context.Background(), "route registered", "path", "/api/catalog/menus")
	mux.HandleFunc("/app/selection", handlers.Selection)
	mux.HandleFunc("/app/selection/evaluate", handlers.SelectionEvaluate)
	mux.HandleFunc("/app/selection/report", handlers.SelectionReport)
	applog.Debug(context.Background(), "route registered", "path", "/app/selection", "session", true)
	mux.HandleFunc("/mcp", handlers.MCP)
	applog.Debug(context.Background(), "route registered", "path", "/mcp")
	return mux
}

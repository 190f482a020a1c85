package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/respitrack/frontend"
	"github.com/secmon-lab/respitrack/pkg/domain/interfaces"
)

// Server represents the HTTP server
type Server struct {
	*http.Server
	router  chi.Router
	handler *DashboardHandler
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	addr string,
	dashboardUC interfaces.Dashboard,
	renderer interfaces.ChartRenderer,
	exporter interfaces.Exporter,
) (*Server, error) {
	handler, err := NewDashboardHandler(dashboardUC, renderer, exporter)
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	// Health check
	router.Get("/health", handleHealth)

	router.Group(func(r chi.Router) {
		r.Use(NoCache)
		r.Get("/", handler.HandlePage)
		r.Get("/charts/{chart}", handler.HandleChart)
		r.Get("/api/dashboard", handler.HandleAPI)
		r.Get("/export.csv", handler.HandleExport)
	})

	fs, err := frontend.GetHTTPFS()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load embedded static assets")
	}
	router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(fs)))

	ctxlog.From(ctx).Debug("HTTP routes registered",
		"dataset", dashboardUC.DatasetName(),
		"chart_format", renderer.Extension(),
	)

	server := &Server{
		Server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		router:  router,
		handler: handler,
	}

	return server, nil
}

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "respitrack",
	}); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode health response", "error", err)
	}
}

// writeError writes an error response
func writeError(ctx context.Context, w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	}); err != nil {
		ctxlog.From(ctx).Error("Failed to encode error response", "error", err)
	}
}

// writeJSON writes v as a JSON response
func writeJSON(ctx context.Context, w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctxlog.From(ctx).Error("Failed to encode response", "error", err)
	}
}

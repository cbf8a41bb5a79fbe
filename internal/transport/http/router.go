package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"salespulse/internal/config"
	apierrors "salespulse/internal/errors"
	"salespulse/internal/infrastructure"
	"salespulse/internal/middleware"
	"salespulse/internal/services"
	"salespulse/internal/websocket"
)

// RouterDeps bundles what the router needs.
type RouterDeps struct {
	Analysis *services.AnalysisService
	Health   *services.HealthService
	Hub      *websocket.Hub
	Metrics  *infrastructure.Metrics
	Config   *config.Config
	Logger   *slog.Logger
}

// NewRouter builds the chi router with the full middleware chain and all
// routes mounted.
func NewRouter(deps RouterDeps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.StructuredLogger(logger))
	r.Use(chimiddleware.Recoverer)
	if deps.Config != nil {
		r.Use(middleware.RateLimit(deps.Config.Server.RateLimit))
	}
	r.Use(render.SetContentType(render.ContentTypeJSON))

	analysis := NewAnalysisHandler(deps.Analysis, logger)
	health := NewHealthHandler(deps.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", health.HealthCheck)
		r.Route("/analysis", func(r chi.Router) {
			r.Post("/", analysis.Create)
			r.Get("/", analysis.List)
			r.Get("/{id}", analysis.Get)
		})
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	if deps.Hub != nil {
		r.Get("/ws/progress", func(w http.ResponseWriter, req *http.Request) {
			websocket.ServeWS(deps.Hub, w, req)
		})
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		render.Render(w, req, apierrors.ErrNotFound)
	})

	return r
}

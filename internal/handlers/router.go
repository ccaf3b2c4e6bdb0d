package handlers

import (
	"net/http"
	"time"

	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/metrics"
	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig holds the cross-cutting router settings
type RouterConfig struct {
	CORSOrigins []string
	Metrics     *metrics.Metrics
	Gatherer    prometheus.Gatherer // served on /metrics when set
}

// NewRouter mounts every dashboard and API route
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Instrument(cfg.Metrics))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// Routes
	r.Get("/", h.Index)
	r.Get("/health", h.HealthCheck)
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/compare", h.Compare)
		r.Get("/chart", h.Chart)
	})

	return r
}

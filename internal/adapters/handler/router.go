package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AchilleasB/gordon-events/student-identity-service/internal/adapters/middleware"
)

type RouterOptions struct {
	Identity       *IdentityHandler
	Schedule       *ScheduleHandler
	Health         *HealthHandler
	Gatherer       prometheus.Gatherer
	AllowedOrigins []string
	Logger         *slog.Logger
}

// NewRouter mounts the API under /api next to the health and metrics endpoints.
func NewRouter(opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(opts.Logger))
	r.Use(middleware.CORSMiddleware(opts.AllowedOrigins))

	if opts.Health != nil {
		r.Get("/health", opts.Health.Health)
		r.Get("/health/ready", opts.Health.Ready)
		r.Get("/health/live", opts.Health.Live)
	}
	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(api chi.Router) {
		api.Use(chimw.Timeout(30 * time.Second))
		if opts.Identity != nil {
			opts.Identity.Register(api)
		}
		if opts.Schedule != nil {
			opts.Schedule.Register(api)
		}
	})
	return r
}

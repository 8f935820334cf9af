package router

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/thurein/hotel-outreach/internal/api/respond"
	"github.com/thurein/hotel-outreach/internal/dashboard"
	"github.com/thurein/hotel-outreach/internal/hotels"
	httpmiddleware "github.com/thurein/hotel-outreach/internal/http/middleware"
	"github.com/thurein/hotel-outreach/internal/observability/metrics"
	"github.com/thurein/hotel-outreach/internal/regions"
	"github.com/thurein/hotel-outreach/internal/users"
	"github.com/thurein/hotel-outreach/pkg/logging"
)

// Pinger reports store connectivity for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	HotelsHandler      *hotels.Handler
	RegionsHandler     *regions.Handler
	UsersHandler       *users.Handler
	DashboardHandler   *dashboard.Handler
	HTTPMetrics        *metrics.HTTPMetrics
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
	DB                 Pinger
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}
	if cfg.HTTPMetrics != nil {
		r.Use(cfg.HTTPMetrics.Middleware)
	}

	r.Get("/health", healthCheck(cfg.DB))
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	if cfg.HotelsHandler != nil {
		r.Mount("/hotels", cfg.HotelsHandler.Routes())
	}
	if cfg.RegionsHandler != nil {
		r.Mount("/regions", cfg.RegionsHandler.Routes())
	}
	if cfg.DashboardHandler != nil {
		r.Mount("/dashboard", cfg.DashboardHandler.Routes())
	}
	if cfg.UsersHandler != nil {
		r.Get("/users", cfg.UsersHandler.List)
	}

	return r
}

func healthCheck(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				respond.Error(w, http.StatusServiceUnavailable, "storage unavailable")
				return
			}
		}
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/thurein/hotel-outreach/internal/api/router"
	appconfig "github.com/thurein/hotel-outreach/internal/config"
	"github.com/thurein/hotel-outreach/internal/dashboard"
	"github.com/thurein/hotel-outreach/internal/db"
	"github.com/thurein/hotel-outreach/internal/hotels"
	"github.com/thurein/hotel-outreach/internal/observability/metrics"
	"github.com/thurein/hotel-outreach/internal/regions"
	"github.com/thurein/hotel-outreach/internal/users"
	"github.com/thurein/hotel-outreach/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()

	var logger *logging.Logger
	if cfg.Env == "development" {
		logger = logging.NewText(cfg.LogLevel)
	} else {
		logger = logging.New(cfg.LogLevel)
	}
	logger.Info("starting hotel-outreach API server", "env", cfg.Env, "port", cfg.Port)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	summaryCache := dashboard.NewSummaryCache(buildRedisClient(ctx, cfg, logger), cfg.SummaryCacheTTL)

	hotelsRepo := hotels.NewRepository(pool)
	regionsRegistry := regions.NewRegistry(pool)
	usersRepo := users.NewRepository(pool)
	dashboardService := dashboard.NewService(pool)

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	r := router.New(&router.Config{
		Logger:             logger,
		HotelsHandler:      hotels.NewHandler(hotelsRepo, logger).WithPageSizes(cfg.DefaultPageSize, cfg.MaxPageSize),
		RegionsHandler:     regions.NewHandler(regionsRegistry, logger),
		UsersHandler:       users.NewHandler(usersRepo, logger),
		DashboardHandler:   dashboard.NewHandler(dashboardService, summaryCache, logger),
		HTTPMetrics:        httpMetrics,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		DB:                 pool,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// buildRedisClient returns a verified Redis client or nil when disabled or
// unreachable. The dashboard cache degrades to recomputing on every request.
func buildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available, summary cache disabled", "error", err)
		return nil
	}
	return client
}

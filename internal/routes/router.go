package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"horizon-rp/quartermaster/internal/api"
	"horizon-rp/quartermaster/internal/db"
	"horizon-rp/quartermaster/internal/logging"
	"horizon-rp/quartermaster/internal/metrics"
	"horizon-rp/quartermaster/internal/middleware"
	"horizon-rp/quartermaster/internal/workers"
)

func RegisterRoutes(upSince time.Time) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// Initialize metrics registry
	metricsReg := metrics.NewMetricsRegistry()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(metricsReg))
	r.Use(middleware.RateLimitMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-API-Key", "X-Discord-Id"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	logging.Info("Router initialized with metrics and logging middleware")

	// Initialize dependencies using DI pattern
	deps, err := api.InitDependencies(metricsReg)
	if err != nil {
		panic("Failed to initialize dependencies: " + err.Error())
	}

	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(db.DB, deps.Services.Redis, upSince))

	// Initialize handlers with dependencies
	handlers := api.NewHandlers(deps)
	presenceHandlers := api.NewPresenceHandlers(deps.Services.Tracker, metricsReg)

	// Background workers: staff status refresh, reward retry consumer and
	// the presence reaper all run for the lifetime of the process.
	workers.InitWorkers(
		context.Background(),
		metricsReg,
		deps.Services.StaffStatus,
		deps.Services.Prize,
		&deps.Services.RewardQueue,
		deps.Services.PresenceHub,
	)

	// Register API routes
	RegisterAPIRoutes(r, handlers, presenceHandlers, deps, metricsReg)

	return r
}

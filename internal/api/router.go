package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/mcoot/playerbase/internal/api/handler"
	"github.com/mcoot/playerbase/internal/api/middleware"
	"github.com/mcoot/playerbase/internal/metrics"
	coremiddleware "github.com/mcoot/playerbase/internal/middleware"
	"github.com/mcoot/playerbase/internal/services/players"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger        *slog.Logger
	PlayerService *players.Service

	// Metrics is optional; nil disables instrumentation and /metrics
	Metrics   *metrics.Metrics
	RateLimit coremiddleware.RateLimitConfig

	// StorageName and StoragePinger feed the health endpoint
	StorageName   string
	StoragePinger handler.Pinger

	// Done stops background work such as rate limiter eviction
	Done <-chan struct{}
}

const rateLimitCleanupInterval = time.Minute

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.PlayerService)
	healthHandler := handler.NewHealthHandler(cfg.StorageName, cfg.StoragePinger)

	// Create middleware
	loggingMiddleware := coremiddleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	var onReject func()
	if cfg.Metrics != nil {
		onReject = cfg.Metrics.RateLimited
	}
	rateLimiter := middleware.RateLimit(cfg.RateLimit, cfg.Logger, onReject)
	if cfg.Done != nil && cfg.RateLimit.RequestsPerSecond > 0 {
		rateLimiter.StartCleanup(rateLimitCleanupInterval, cfg.Done)
	}

	// Outermost first: request IDs must exist before a panic is logged
	r.Use(loggingMiddleware)
	r.Use(recoveryMiddleware)
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Instrument)
		r.Handle("/metrics", cfg.Metrics.Handler()).Methods(http.MethodGet)
	}

	// Health check endpoint (not rate limited)
	r.HandleFunc("/health", healthHandler.Get).Methods(http.MethodGet)

	// Player routes; /count must be registered before /{id}
	api := r.PathPrefix("/players").Subrouter()
	api.Use(rateLimiter.Handler)
	api.HandleFunc("", playerHandler.List).Methods(http.MethodGet)
	api.HandleFunc("", playerHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/count", playerHandler.Count).Methods(http.MethodGet)
	api.HandleFunc("/{id}", playerHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/{id}", playerHandler.Update).Methods(http.MethodPost)
	api.HandleFunc("/{id}", playerHandler.Delete).Methods(http.MethodDelete)

	return r
}

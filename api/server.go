// ABOUTME: Huma API server configuration and setup
// ABOUTME: Provides OpenAPI documentation, CORS, the access gate and request middleware

package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"mentions-api/api/handlers"
	"mentions-api/api/middleware"
	"mentions-api/core/interfaces"
)

const (
	// Title is the API name shown in the OpenAPI document
	Title = "Mentions API"

	// Version is the API version shown in the OpenAPI document
	Version = "1.0.0"
)

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger     interfaces.Logger
	Secrets    interfaces.Secrets // access code source; nil leaves the API open
	RateLimit  int                // requests per window
	RateWindow time.Duration      // rate limit window
	Tracing    bool               // wrap requests in OpenTelemetry spans
}

// humaConfig returns the Huma configuration shared by every constructor.
// Error bodies use {error, details} and carry no $schema link.
func humaConfig() huma.Config {
	huma.NewError = handlers.NewError

	config := huma.DefaultConfig(Title, Version)
	config.Info.Description = "Recent public mentions of tracked people, filtered for freshness and cached per subject"
	config.CreateHooks = nil
	return config
}

func corsHandler() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS", "PATCH", "DELETE", "POST", "PUT"},
		AllowedHeaders: []string{
			"X-CSRF-Token", "X-Requested-With", "Accept", "Accept-Version",
			"Content-Length", "Content-MD5", "Content-Type", "Date",
			"X-Api-Version", middleware.AccessCodeHeader,
		},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})
}

// NewAPI creates and configures a new Huma API instance without middleware
func NewAPI() (huma.API, chi.Router) {
	router := chi.NewRouter()
	router.Use(corsHandler())

	// The OpenAPI spec is available at /openapi.json, the docs UI at /docs
	return humachi.New(router, humaConfig()), router
}

// NewAPIWithMiddleware creates a new API with middleware configured
func NewAPIWithMiddleware(cfg APIConfig) (huma.API, chi.Router) {
	router := chi.NewRouter()

	if cfg.Tracing {
		router.Use(func(next http.Handler) http.Handler {
			return otelhttp.NewHandler(next, "mentions-api")
		})
	}

	// CORS answers preflight requests before the gate sees them
	router.Use(corsHandler())

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}

	if cfg.RateLimit > 0 && cfg.RateWindow > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		router.Use(middleware.RateLimitMiddleware(limiter))
	}

	if cfg.Secrets != nil {
		logger := cfg.Logger
		if logger == nil {
			logger = nopLogger{}
		}
		router.Use(middleware.AccessGateMiddleware(cfg.Secrets, logger))
	}

	return humachi.New(router, humaConfig()), router
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}

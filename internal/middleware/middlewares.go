package middleware

import (
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pixelfeed/backend/internal/server"
	"github.com/pixelfeed/backend/internal/service"
)

// Middlewares groups all middleware components used by the HTTP
// server, so routing code has a single place to pull them from.
type Middlewares struct {
	// Global holds common middleware used across the whole API:
	// CORS, request logging, recovery, secure headers, and the global
	// error handler.
	Global *GlobalMiddlewares

	// Auth enforces token authentication and ownership checks.
	Auth *AuthMiddleware

	// ContextEnhancer enriches each request with a request-scoped
	// logger carrying request_id, method, path, ip, optional user and
	// trace metadata.
	ContextEnhancer *ContextEnhancer

	// Tracing provides New Relic middleware and helpers to attach
	// custom attributes and notice errors on transactions.
	Tracing *TracingMiddleware

	// RateLimit records rate limit telemetry.
	RateLimit *RateLimitMiddleware
}

// NewMiddlewares constructs all middleware components. If New Relic is
// not configured, nrApp is nil and tracing degrades to a no-op.
func NewMiddlewares(s *server.Server, services *service.Services) *Middlewares {
	var nrApp *newrelic.Application
	if s.LoggerService != nil {
		nrApp = s.LoggerService.GetApplication()
	}

	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		Auth:            NewAuthMiddleware(s, services.Auth),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, nrApp),
		RateLimit:       NewRateLimitMiddleware(s),
	}
}

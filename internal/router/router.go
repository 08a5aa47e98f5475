// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/pixelfeed/backend/internal/handler"
	"github.com/pixelfeed/backend/internal/middleware"
	"github.com/pixelfeed/backend/internal/server"
)

// New builds the Echo router: global middleware in order, the global
// error handler, and all route groups.
//
// Middleware order matters: the New Relic transaction must exist
// before the context enhancer reads trace metadata, and the request ID
// must exist before anything logs.
func New(s *server.Server, h *handler.Handlers, m *middleware.Middlewares) *echo.Echo {
	r := echo.New()
	r.HideBanner = true
	r.HidePort = true

	r.HTTPErrorHandler = m.Global.GlobalErrorHandler

	r.Use(m.Tracing.NewRelicMiddleware())
	r.Use(middleware.RequestID())
	r.Use(m.ContextEnhancer.EnhanceContext())
	r.Use(m.Tracing.EnhanceTracing())
	r.Use(m.Global.CORS())
	r.Use(m.Global.Secure())
	r.Use(m.Global.RequestLogger())
	r.Use(m.Global.Recover())

	registerSystemRoutes(r, h)
	registerAuthRoutes(r, h, m)
	registerUserRoutes(r, h, m)
	registerPostRoutes(r, h, m)

	return r
}

package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pixelfeed/backend/internal/handler"
	"github.com/pixelfeed/backend/internal/middleware"
)

// registerAuthRoutes registers the public authentication endpoints.
// Both are rate limited since they are the credential-stuffing
// surface.
func registerAuthRoutes(r *echo.Echo, h *handler.Handlers, m *middleware.Middlewares) {
	auth := r.Group("/auth", m.RateLimit.Limit(5, 10))

	auth.POST("/token", handler.Handle(h.Auth.Handler, h.Auth.Login, http.StatusOK))
	auth.POST("/register", handler.Handle(h.Auth.Handler, h.Auth.Register, http.StatusCreated))
}

package router

import (
	"github.com/labstack/echo/v4"
	"github.com/pixelfeed/backend/internal/handler"
)

// registerSystemRoutes registers endpoints that are not part of
// business logic.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	// Health status endpoint, polled by load balancers and monitors.
	r.GET("/status", h.Health.CheckHealth)
}

package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pixelfeed/backend/internal/handler"
	"github.com/pixelfeed/backend/internal/middleware"
)

// registerUserRoutes registers profile and social-graph endpoints.
// Reads are public; anything that mutates the addressed user requires
// the token subject to match the path username (or admin).
func registerUserRoutes(r *echo.Echo, h *handler.Handlers, m *middleware.Middlewares) {
	users := r.Group("/users")

	users.GET("", handler.Handle(h.Users.Handler, h.Users.List, http.StatusOK))
	users.GET("/:username", handler.Handle(h.Users.Handler, h.Users.Get, http.StatusOK))
	users.GET("/:username/likes", handler.Handle(h.Users.Handler, h.Users.Likes, http.StatusOK))
	users.GET("/:username/following", handler.Handle(h.Users.Handler, h.Users.Following, http.StatusOK))
	users.GET("/:username/followers", handler.Handle(h.Users.Handler, h.Users.Followers, http.StatusOK))

	owned := users.Group("", m.Auth.RequireAuth, m.Auth.RequireSelfOrAdmin("username"))

	owned.PATCH("/:username/edit", handler.Handle(h.Users.Handler, h.Users.Update, http.StatusOK))
	owned.DELETE("/:username", handler.HandleNoContent(h.Users.Handler, h.Users.Delete, http.StatusNoContent))
	owned.POST("/:username/follow/:id", handler.Handle(h.Users.Handler, h.Users.Follow, http.StatusCreated))
	owned.DELETE("/:username/unfollow/:id", handler.HandleNoContent(h.Users.Handler, h.Users.Unfollow, http.StatusNoContent))
}

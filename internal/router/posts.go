package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pixelfeed/backend/internal/handler"
	"github.com/pixelfeed/backend/internal/middleware"
)

// registerPostRoutes registers post and engagement endpoints. Reads
// are public; every mutation carries the acting username in the path
// and requires the token subject to match it (or admin).
func registerPostRoutes(r *echo.Echo, h *handler.Handlers, m *middleware.Middlewares) {
	posts := r.Group("/posts")

	posts.GET("", handler.Handle(h.Posts.Handler, h.Posts.List, http.StatusOK))
	posts.GET("/:id", handler.Handle(h.Posts.Handler, h.Posts.Get, http.StatusOK))
	posts.GET("/:id/likes", handler.Handle(h.Posts.Handler, h.Posts.Likes, http.StatusOK))
	posts.GET("/:id/comments", handler.Handle(h.Posts.Handler, h.Posts.Comments, http.StatusOK))

	owned := posts.Group("", m.Auth.RequireAuth, m.Auth.RequireSelfOrAdmin("username"))

	// Static "create" segment keeps the username param out of the
	// position Echo already binds to :id on the public routes.
	owned.POST("/create/:username", handler.Handle(h.Posts.Handler, h.Posts.Create, http.StatusCreated))
	owned.DELETE("/:id/:username", handler.HandleNoContent(h.Posts.Handler, h.Posts.Delete, http.StatusNoContent))
	owned.POST("/:id/:username/like", handler.Handle(h.Posts.Handler, h.Posts.Like, http.StatusCreated))
	owned.DELETE("/:id/:username/unlike", handler.HandleNoContent(h.Posts.Handler, h.Posts.Unlike, http.StatusNoContent))
	owned.POST("/:id/:username/comment", handler.Handle(h.Posts.Handler, h.Posts.AddComment, http.StatusCreated))
	owned.DELETE("/:id/:username/comment/:comment_id", handler.HandleNoContent(h.Posts.Handler, h.Posts.RemoveComment, http.StatusNoContent))
}

// Package handler is the entry point for business logic after the
// router.
//
// It parses requests, handles input validation using the validation
// package, and calls the appropriate service layer. It is the
// interface between the HTTP request and the core business logic.
package handler

import (
	"github.com/pixelfeed/backend/internal/server"
	"github.com/pixelfeed/backend/internal/service"
)

// Handlers is a container that groups all HTTP handlers so router
// setup passes one object around.
type Handlers struct {
	Health *HealthHandler
	Auth   *AuthHandler
	Users  *UserHandler
	Posts  *PostHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health: NewHealthHandler(s),
		Auth:   NewAuthHandler(s, services.Auth),
		Users:  NewUserHandler(s, services.Users, services.Social),
		Posts:  NewPostHandler(s, services.Posts, services.Engagement),
	}
}

package service

import (
	"context"

	"github.com/pixelfeed/backend/internal/repository"
	"github.com/pixelfeed/backend/internal/server"
)

// UserService exposes user profile operations to the handler layer.
type UserService struct {
	server *server.Server
	users  *repository.UserRepository
}

func NewUserService(s *server.Server, users *repository.UserRepository) *UserService {
	return &UserService{server: s, users: users}
}

func (s *UserService) List(ctx context.Context) ([]repository.UserSummary, error) {
	return s.users.FindAll(ctx)
}

func (s *UserService) Get(ctx context.Context, username string) (*repository.UserDetail, error) {
	return s.users.Get(ctx, username)
}

func (s *UserService) Update(ctx context.Context, username string, fields map[string]any) (*repository.User, error) {
	return s.users.Update(ctx, username, fields)
}

func (s *UserService) Remove(ctx context.Context, username string) error {
	return s.users.Remove(ctx, username)
}

func (s *UserService) GetLikes(ctx context.Context, username string) ([]repository.LikedPost, error) {
	return s.users.GetLikes(ctx, username)
}

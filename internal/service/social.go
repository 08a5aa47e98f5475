package service

import (
	"context"

	"github.com/pixelfeed/backend/internal/repository"
	"github.com/pixelfeed/backend/internal/server"
)

// SocialService exposes the follow graph to the handler layer.
type SocialService struct {
	server  *server.Server
	follows *repository.FollowRepository
}

func NewSocialService(s *server.Server, follows *repository.FollowRepository) *SocialService {
	return &SocialService{server: s, follows: follows}
}

func (s *SocialService) Follow(ctx context.Context, follower string, followedID int) (*repository.FollowEdge, error) {
	return s.follows.Follow(ctx, follower, followedID)
}

func (s *SocialService) Unfollow(ctx context.Context, follower string, followedID int) error {
	return s.follows.Unfollow(ctx, follower, followedID)
}

func (s *SocialService) Following(ctx context.Context, username string) ([]repository.FollowedUser, error) {
	return s.follows.Following(ctx, username)
}

func (s *SocialService) Followers(ctx context.Context, username string) ([]repository.FollowedUser, error) {
	return s.follows.Followers(ctx, username)
}

package service

import (
	"context"

	"github.com/pixelfeed/backend/internal/repository"
	"github.com/pixelfeed/backend/internal/server"
)

// EngagementService exposes like and comment operations to the handler
// layer.
type EngagementService struct {
	server     *server.Server
	engagement *repository.EngagementRepository
}

func NewEngagementService(s *server.Server, engagement *repository.EngagementRepository) *EngagementService {
	return &EngagementService{server: s, engagement: engagement}
}

func (s *EngagementService) AddLike(ctx context.Context, username string, postID int) (*repository.Like, error) {
	return s.engagement.AddLike(ctx, username, postID)
}

func (s *EngagementService) RemoveLike(ctx context.Context, username string, postID int) error {
	return s.engagement.RemoveLike(ctx, username, postID)
}

func (s *EngagementService) AddComment(ctx context.Context, username string, postID int, text string) (*repository.Comment, error) {
	return s.engagement.AddComment(ctx, username, postID, text)
}

func (s *EngagementService) RemoveComment(ctx context.Context, postID, commentID int) error {
	return s.engagement.RemoveComment(ctx, postID, commentID)
}

func (s *EngagementService) ListComments(ctx context.Context, postID int) ([]repository.Comment, error) {
	return s.engagement.ListComments(ctx, postID)
}

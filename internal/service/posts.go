package service

import (
	"context"

	"github.com/pixelfeed/backend/internal/errs"
	"github.com/pixelfeed/backend/internal/repository"
	"github.com/pixelfeed/backend/internal/server"
)

// PostService exposes post operations to the handler layer.
type PostService struct {
	server *server.Server
	posts  *repository.PostRepository
}

func NewPostService(s *server.Server, posts *repository.PostRepository) *PostService {
	return &PostService{server: s, posts: posts}
}

func (s *PostService) Create(ctx context.Context, params repository.CreatePostParams) (*repository.Post, error) {
	return s.posts.Create(ctx, params)
}

func (s *PostService) List(ctx context.Context) ([]repository.PostWithAuthor, error) {
	return s.posts.FindAll(ctx)
}

func (s *PostService) Get(ctx context.Context, postID int) (*repository.PostDetail, error) {
	return s.posts.Get(ctx, postID)
}

func (s *PostService) GetLikes(ctx context.Context, postID int) ([]repository.PostLike, error) {
	return s.posts.GetLikes(ctx, postID)
}

// Remove deletes a post after verifying the addressed username owns
// it. The repository itself does no authorization, so the ownership
// check lives here.
func (s *PostService) Remove(ctx context.Context, postID int, username string) error {
	post, err := s.posts.Get(ctx, postID)
	if err != nil {
		return err
	}
	if post.Username != username {
		return errs.NewForbiddenError("You may only delete your own posts", true)
	}
	return s.posts.Remove(ctx, postID)
}

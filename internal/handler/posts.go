package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/pixelfeed/backend/internal/repository"
	"github.com/pixelfeed/backend/internal/server"
	"github.com/pixelfeed/backend/internal/service"
)

// PostHandler serves the post and engagement endpoints.
type PostHandler struct {
	Handler
	posts      *service.PostService
	engagement *service.EngagementService
}

// NewPostHandler constructs a PostHandler.
func NewPostHandler(s *server.Server, posts *service.PostService, engagement *service.EngagementService) *PostHandler {
	return &PostHandler{
		Handler:    NewHandler(s),
		posts:      posts,
		engagement: engagement,
	}
}

// CreatePostRequest carries a new post. The owner comes from the path.
type CreatePostRequest struct {
	Username  string  `param:"username" validate:"required"`
	ImageFile string  `json:"imageFile" validate:"required"`
	Caption   *string `json:"caption" validate:"omitempty,max=500"`
}

func (r *CreatePostRequest) Validate() error {
	return validate.Struct(r)
}

// ListPostsRequest has no inputs.
type ListPostsRequest struct{}

func (r *ListPostsRequest) Validate() error { return nil }

// GetPostRequest addresses a post by id.
type GetPostRequest struct {
	ID int `param:"id" validate:"required"`
}

func (r *GetPostRequest) Validate() error {
	return validate.Struct(r)
}

// DeletePostRequest addresses a post and its claimed owner.
type DeletePostRequest struct {
	ID       int    `param:"id" validate:"required"`
	Username string `param:"username" validate:"required"`
}

func (r *DeletePostRequest) Validate() error {
	return validate.Struct(r)
}

// LikeRequest addresses a like edge: acting username plus post id.
type LikeRequest struct {
	Username string `param:"username" validate:"required"`
	PostID   int    `param:"id" validate:"required"`
}

func (r *LikeRequest) Validate() error {
	return validate.Struct(r)
}

// AddCommentRequest carries a new comment on a post.
type AddCommentRequest struct {
	ID       int    `param:"id" validate:"required"`
	Username string `param:"username" validate:"required"`
	Comment  string `json:"comment" validate:"required,max=1000"`
}

func (r *AddCommentRequest) Validate() error {
	return validate.Struct(r)
}

// RemoveCommentRequest addresses a comment by its post and id. The
// username in the path is consumed by the authorization middleware.
type RemoveCommentRequest struct {
	ID        int `param:"id" validate:"required"`
	CommentID int `param:"comment_id" validate:"required"`
}

func (r *RemoveCommentRequest) Validate() error {
	return validate.Struct(r)
}

// Create inserts a post owned by the addressed user.
func (h *PostHandler) Create(c echo.Context, req *CreatePostRequest) (*repository.Post, error) {
	return h.posts.Create(c.Request().Context(), repository.CreatePostParams{
		Username:  req.Username,
		ImageFile: req.ImageFile,
		Caption:   req.Caption,
	})
}

// List returns all posts, newest first, with author info.
func (h *PostHandler) List(c echo.Context, req *ListPostsRequest) ([]repository.PostWithAuthor, error) {
	return h.posts.List(c.Request().Context())
}

// Get returns a single post with its author, likes, and comments.
func (h *PostHandler) Get(c echo.Context, req *GetPostRequest) (*repository.PostDetail, error) {
	return h.posts.Get(c.Request().Context(), req.ID)
}

// Likes returns the users who liked a post.
func (h *PostHandler) Likes(c echo.Context, req *GetPostRequest) ([]repository.PostLike, error) {
	return h.posts.GetLikes(c.Request().Context(), req.ID)
}

// Delete removes a post owned by the addressed user.
func (h *PostHandler) Delete(c echo.Context, req *DeletePostRequest) error {
	return h.posts.Remove(c.Request().Context(), req.ID, req.Username)
}

// Like records a like on a post.
func (h *PostHandler) Like(c echo.Context, req *LikeRequest) (*repository.Like, error) {
	return h.engagement.AddLike(c.Request().Context(), req.Username, req.PostID)
}

// Unlike removes a like. Succeeds whether or not the like existed.
func (h *PostHandler) Unlike(c echo.Context, req *LikeRequest) error {
	return h.engagement.RemoveLike(c.Request().Context(), req.Username, req.PostID)
}

// Comments returns the comments on a post, oldest first.
func (h *PostHandler) Comments(c echo.Context, req *GetPostRequest) ([]repository.Comment, error) {
	return h.engagement.ListComments(c.Request().Context(), req.ID)
}

// AddComment attaches a comment to a post.
func (h *PostHandler) AddComment(c echo.Context, req *AddCommentRequest) (*repository.Comment, error) {
	return h.engagement.AddComment(c.Request().Context(), req.Username, req.ID, req.Comment)
}

// RemoveComment deletes a comment from a post.
func (h *PostHandler) RemoveComment(c echo.Context, req *RemoveCommentRequest) error {
	return h.engagement.RemoveComment(c.Request().Context(), req.ID, req.CommentID)
}

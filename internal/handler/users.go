package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/pixelfeed/backend/internal/errs"
	"github.com/pixelfeed/backend/internal/middleware"
	"github.com/pixelfeed/backend/internal/repository"
	"github.com/pixelfeed/backend/internal/server"
	"github.com/pixelfeed/backend/internal/service"
)

// UserHandler serves the user profile and social-graph endpoints.
type UserHandler struct {
	Handler
	users  *service.UserService
	social *service.SocialService
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(s *server.Server, users *service.UserService, social *service.SocialService) *UserHandler {
	return &UserHandler{
		Handler: NewHandler(s),
		users:   users,
		social:  social,
	}
}

// ListUsersRequest has no inputs.
type ListUsersRequest struct{}

func (r *ListUsersRequest) Validate() error { return nil }

// GetUserRequest addresses a user by username path parameter.
type GetUserRequest struct {
	Username string `param:"username" validate:"required"`
}

func (r *GetUserRequest) Validate() error {
	return validate.Struct(r)
}

// UpdateUserRequest is a partial update: only fields present in the
// body are applied. Pointer fields distinguish absent from empty.
type UpdateUserRequest struct {
	Username     string  `param:"username" validate:"required"`
	NewUsername  *string `json:"username" validate:"omitempty,min=3,max=30,alphanum"`
	Password     *string `json:"password" validate:"omitempty,min=8,max=72"`
	FirstName    *string `json:"firstName" validate:"omitempty,max=50"`
	LastName     *string `json:"lastName" validate:"omitempty,max=50"`
	Email        *string `json:"email" validate:"omitempty,email"`
	ProfileImage *string `json:"profileImage"`
	Bio          *string `json:"bio" validate:"omitempty,max=400"`
	IsAdmin      *bool   `json:"isAdmin"`
}

func (r *UpdateUserRequest) Validate() error {
	return validate.Struct(r)
}

// fields flattens the request into the update map the repository's
// partial-update builder consumes.
func (r *UpdateUserRequest) fields() map[string]any {
	fields := map[string]any{}
	if r.NewUsername != nil {
		fields["username"] = *r.NewUsername
	}
	if r.Password != nil {
		fields["password"] = *r.Password
	}
	if r.FirstName != nil {
		fields["firstName"] = *r.FirstName
	}
	if r.LastName != nil {
		fields["lastName"] = *r.LastName
	}
	if r.Email != nil {
		fields["email"] = *r.Email
	}
	if r.ProfileImage != nil {
		fields["profileImage"] = *r.ProfileImage
	}
	if r.Bio != nil {
		fields["bio"] = *r.Bio
	}
	return fields
}

// FollowTargetRequest addresses a follow edge: the acting username
// plus the target user id.
type FollowTargetRequest struct {
	Username string `param:"username" validate:"required"`
	ID       int    `param:"id" validate:"required"`
}

func (r *FollowTargetRequest) Validate() error {
	return validate.Struct(r)
}

// List returns all users.
func (h *UserHandler) List(c echo.Context, req *ListUsersRequest) ([]repository.UserSummary, error) {
	return h.users.List(c.Request().Context())
}

// Get returns the composite profile view for one user.
func (h *UserHandler) Get(c echo.Context, req *GetUserRequest) (*repository.UserDetail, error) {
	return h.users.Get(c.Request().Context(), req.Username)
}

// Update applies a partial update to the addressed user. Only admins
// may change the admin flag.
func (h *UserHandler) Update(c echo.Context, req *UpdateUserRequest) (*repository.User, error) {
	fields := req.fields()
	if req.IsAdmin != nil {
		if !middleware.IsAdmin(c) {
			return nil, errs.NewForbiddenError("Only admins may change the admin flag", true)
		}
		fields["isAdmin"] = *req.IsAdmin
	}
	return h.users.Update(c.Request().Context(), req.Username, fields)
}

// Delete removes the addressed user and all owned content.
func (h *UserHandler) Delete(c echo.Context, req *GetUserRequest) error {
	return h.users.Remove(c.Request().Context(), req.Username)
}

// Likes returns the posts the addressed user has liked.
func (h *UserHandler) Likes(c echo.Context, req *GetUserRequest) ([]repository.LikedPost, error) {
	return h.users.GetLikes(c.Request().Context(), req.Username)
}

// Following returns the users the addressed user follows.
func (h *UserHandler) Following(c echo.Context, req *GetUserRequest) ([]repository.FollowedUser, error) {
	return h.social.Following(c.Request().Context(), req.Username)
}

// Followers returns the users following the addressed user.
func (h *UserHandler) Followers(c echo.Context, req *GetUserRequest) ([]repository.FollowedUser, error) {
	return h.social.Followers(c.Request().Context(), req.Username)
}

// Follow creates a follow edge from the addressed user to the target
// id.
func (h *UserHandler) Follow(c echo.Context, req *FollowTargetRequest) (*repository.FollowEdge, error) {
	return h.social.Follow(c.Request().Context(), req.Username, req.ID)
}

// Unfollow removes the follow edge from the addressed user to the
// target id.
func (h *UserHandler) Unfollow(c echo.Context, req *FollowTargetRequest) error {
	return h.social.Unfollow(c.Request().Context(), req.Username, req.ID)
}

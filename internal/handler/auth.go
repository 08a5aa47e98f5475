package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pixelfeed/backend/internal/repository"
	"github.com/pixelfeed/backend/internal/server"
	"github.com/pixelfeed/backend/internal/service"
)

var validate = validator.New()

// AuthHandler serves the authentication endpoints.
type AuthHandler struct {
	Handler
	auth *service.AuthService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(s *server.Server, auth *service.AuthService) *AuthHandler {
	return &AuthHandler{
		Handler: NewHandler(s),
		auth:    auth,
	}
}

// LoginRequest carries credentials for token issuance.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	return validate.Struct(r)
}

// RegisterRequest carries the fields for account creation.
type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=30,alphanum"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName" validate:"required,max=50"`
	Email     string `json:"email" validate:"required,email"`
}

func (r *RegisterRequest) Validate() error {
	return validate.Struct(r)
}

// TokenResponse is returned by both auth endpoints.
type TokenResponse struct {
	Token string           `json:"token"`
	User  *repository.User `json:"user"`
}

// Login verifies credentials and issues a signed token.
func (h *AuthHandler) Login(c echo.Context, req *LoginRequest) (*TokenResponse, error) {
	token, user, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{Token: token, User: user}, nil
}

// Register creates an account and issues a token for it.
func (h *AuthHandler) Register(c echo.Context, req *RegisterRequest) (*TokenResponse, error) {
	token, user, err := h.auth.Register(c.Request().Context(), repository.RegisterParams{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		return nil, err
	}
	return &TokenResponse{Token: token, User: user}, nil
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pixelfeed/backend/internal/errs"
	"github.com/pixelfeed/backend/internal/lib/job"
	"github.com/pixelfeed/backend/internal/repository"
	"github.com/pixelfeed/backend/internal/server"
)

// TokenClaims are the claims embedded in access tokens. Username and
// IsAdmin are all downstream authorization needs.
type TokenClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

// AuthService issues and validates access tokens and runs the
// registration flow.
type AuthService struct {
	server *server.Server
	users  *repository.UserRepository
	secret []byte
	ttl    time.Duration
}

// NewAuthService constructs the auth service from the server's auth
// config.
func NewAuthService(s *server.Server, users *repository.UserRepository) (*AuthService, error) {
	if s.Config.Auth.SecretKey == "" {
		return nil, errors.New("auth secret key is not configured")
	}
	return &AuthService{
		server: s,
		users:  users,
		secret: []byte(s.Config.Auth.SecretKey),
		ttl:    time.Duration(s.Config.Auth.TokenTTLHours) * time.Hour,
	}, nil
}

// Login verifies credentials and returns a signed token plus the
// authenticated user.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *repository.User, error) {
	user, err := s.users.Authenticate(ctx, username, password)
	if err != nil {
		return "", nil, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Register creates the user, enqueues the welcome email, and returns a
// signed token for the new account. Public registration never grants
// admin. A failed enqueue is logged but does not fail the
// registration.
func (s *AuthService) Register(ctx context.Context, params repository.RegisterParams) (string, *repository.User, error) {
	params.IsAdmin = false

	user, err := s.users.Register(ctx, params)
	if err != nil {
		return "", nil, err
	}

	task, err := job.NewWelcomeEmailTask(user.Email, user.FirstName)
	if err == nil {
		_, err = s.server.Job.Client.EnqueueContext(ctx, task)
	}
	if err != nil {
		s.server.Logger.Error().
			Err(err).
			Str("username", user.Username).
			Msg("Failed to enqueue welcome email")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ValidateToken parses and verifies a signed token, returning its
// claims. Any parse, signature, or expiry failure comes back as a
// 401-level error.
func (s *AuthService) ValidateToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errs.NewUnauthorizedError("Token has expired", true)
		}
		return nil, errs.NewUnauthorizedError("Invalid token", true)
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, errs.NewUnauthorizedError("Invalid token", true)
	}
	return claims, nil
}

func (s *AuthService) issueToken(user *repository.User) (string, error) {
	now := time.Now()
	claims := &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "pixelfeed",
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

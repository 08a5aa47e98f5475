package middleware

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pixelfeed/backend/internal/errs"
	"github.com/pixelfeed/backend/internal/server"
	"github.com/pixelfeed/backend/internal/service"
)

const (
	// IsAdminKey stores the authenticated user's admin flag in Echo
	// context.
	IsAdminKey = "is_admin"
)

// AuthMiddleware enforces token authentication and ownership checks.
type AuthMiddleware struct {
	server *server.Server
	auth   *service.AuthService
}

// NewAuthMiddleware constructs an AuthMiddleware.
func NewAuthMiddleware(s *server.Server, auth *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
		auth:   auth,
	}
}

// RequireAuth is an Echo middleware that enforces authentication.
//
// It reads the Authorization: Bearer header, validates the token, and
// stores the authenticated username and admin flag into Echo context
// for handlers and later middleware to read.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			return errs.NewUnauthorizedError("Missing or malformed token", true)
		}

		claims, err := auth.auth.ValidateToken(token)
		if err != nil {
			auth.server.Logger.Warn().
				Str("function", "RequireAuth").
				Str("request_id", GetRequestID(c)).
				Dur("duration", time.Since(start)).
				Err(err).
				Msg("token validation failed")
			return err
		}

		c.Set(UserIDKey, claims.Username)
		c.Set(IsAdminKey, claims.IsAdmin)

		return next(c)
	}
}

// RequireSelfOrAdmin returns a middleware that only lets the request
// through when the authenticated user matches the named path parameter
// or has the admin flag. It must run after RequireAuth.
func (auth *AuthMiddleware) RequireSelfOrAdmin(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			username := GetUserID(c)
			if username == "" {
				return errs.NewUnauthorizedError("Unauthorized", false)
			}

			if username != c.Param(param) && !IsAdmin(c) {
				return errs.NewForbiddenError("You may only modify your own resources", true)
			}

			return next(c)
		}
	}
}

// IsAdmin reports whether the authenticated user carries the admin
// flag. Returns false when RequireAuth has not run.
func IsAdmin(c echo.Context) bool {
	isAdmin, ok := c.Get(IsAdminKey).(bool)
	return ok && isAdmin
}

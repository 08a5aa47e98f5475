package repository

import (
	"github.com/pixelfeed/backend/internal/lib/password"
	"github.com/pixelfeed/backend/internal/server"
)

// Repositories is a container for all repository instances. Every
// repository shares the server's connection pool; none of them hold
// connection state of their own.
type Repositories struct {
	Users      *UserRepository
	Posts      *PostRepository
	Engagement *EngagementRepository
	Follows    *FollowRepository
}

// NewRepositories constructs the repository container on the server's
// database pool.
func NewRepositories(s *server.Server) *Repositories {
	hasher := password.NewHasher(s.Config.Auth.BcryptCost)
	return &Repositories{
		Users:      NewUserRepository(s.DB.Pool, hasher),
		Posts:      NewPostRepository(s.DB.Pool),
		Engagement: NewEngagementRepository(s.DB.Pool),
		Follows:    NewFollowRepository(s.DB.Pool),
	}
}

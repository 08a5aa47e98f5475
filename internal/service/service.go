// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives
// validated data from the handler, performs business operations, and
// calls repository methods to interact with the data.
package service

import (
	"github.com/pixelfeed/backend/internal/lib/job"
	"github.com/pixelfeed/backend/internal/repository"
	"github.com/pixelfeed/backend/internal/server"
)

// Services is a container for all service instances.
type Services struct {
	Auth       *AuthService
	Users      *UserService
	Posts      *PostService
	Engagement *EngagementService
	Social     *SocialService
	Job        *job.JobService
}

// NewServices constructs the service container.
func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	authService, err := NewAuthService(s, repos.Users)
	if err != nil {
		return nil, err
	}

	return &Services{
		Auth:       authService,
		Users:      NewUserService(s, repos.Users),
		Posts:      NewPostService(s, repos.Posts),
		Engagement: NewEngagementService(s, repos.Engagement),
		Social:     NewSocialService(s, repos.Follows),
		Job:        s.Job,
	}, nil
}

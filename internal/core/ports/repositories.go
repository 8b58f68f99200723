package ports

import (
	"context"

	"github.com/foodcritique/critique-web/internal/core/domain"
)

// LoginResult is what a successful POST /auth/login yields.
type LoginResult struct {
	Token string
	User  domain.User
}

// SignUpInput carries the registration form.
type SignUpInput struct {
	Email    string
	Password string
	Name     string
	Role     domain.Role
}

// AuthGateway covers the unauthenticated endpoints.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	SignUp(ctx context.Context, in SignUpInput) (*domain.User, error)
}

// UserRepository is the remote user collection.
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, u domain.User) (*domain.User, error)
}

// RestaurantRepository is the remote restaurant collection.
type RestaurantRepository interface {
	List(ctx context.Context, filter domain.RestaurantFilter) ([]domain.Restaurant, error)
	// Get returns the restaurant with its reviews embedded.
	Get(ctx context.Context, id string) (*domain.Restaurant, error)
	Create(ctx context.Context, r domain.Restaurant) (*domain.Restaurant, error)
	Update(ctx context.Context, r domain.Restaurant) (*domain.Restaurant, error)
}

// ReviewRepository is the remote review collection.
type ReviewRepository interface {
	List(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, error)
	Create(ctx context.Context, r domain.Review) (*domain.Review, error)
	Update(ctx context.Context, r domain.Review) (*domain.Review, error)
	AddComment(ctx context.Context, reviewID string, c domain.ReviewComment) (*domain.Review, error)
}

// Remote bundles every repository bound to one APIClient.
type Remote struct {
	Client      APIClient
	Auth        AuthGateway
	Users       UserRepository
	Restaurants RestaurantRepository
	Reviews     ReviewRepository
}

// RemoteFactory builds a fresh Remote with its own APIClient. The session
// registry calls it once per visitor.
type RemoteFactory func() *Remote

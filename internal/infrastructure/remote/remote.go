// Package remote implements the repository ports on top of the API client.
// Each function maps one endpoint of the restaurant-review API.
package remote

import (
	"github.com/rs/zerolog"

	"github.com/foodcritique/critique-web/internal/core/ports"
	"github.com/foodcritique/critique-web/internal/infrastructure/apiclient"
)

// New bundles every repository around a single API client.
func New(client ports.APIClient) *ports.Remote {
	return &ports.Remote{
		Client:      client,
		Auth:        NewAuthGateway(client),
		Users:       NewUserRepository(client),
		Restaurants: NewRestaurantRepository(client),
		Reviews:     NewReviewRepository(client),
	}
}

// NewFactory returns a ports.RemoteFactory that gives every caller its own
// API client configured from cfg.
func NewFactory(cfg apiclient.Config, log zerolog.Logger) ports.RemoteFactory {
	return func() *ports.Remote {
		return New(apiclient.New(cfg, log))
	}
}

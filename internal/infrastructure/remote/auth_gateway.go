package remote

import (
	"context"
	"fmt"

	"github.com/foodcritique/critique-web/internal/core/domain"
	"github.com/foodcritique/critique-web/internal/core/ports"
)

type AuthGateway struct {
	client ports.APIClient
}

func NewAuthGateway(client ports.APIClient) *AuthGateway {
	return &AuthGateway{client: client}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse accepts both shapes the API has used: {token, user} and the
// user document itself with a token field next to _id.
type loginResponse struct {
	wireUser
	Token string    `json:"token"`
	User  *wireUser `json:"user"`
}

// Login calls POST /auth/login. A response without both a token and a user
// id is reported as domain.ErrMissingCredentials.
func (g *AuthGateway) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	var resp loginResponse
	if err := g.client.Post(ctx, "/auth/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	user := resp.wireUser
	if resp.User != nil && resp.User.ID != "" {
		user = *resp.User
	}
	if resp.Token == "" || user.ID == "" {
		return nil, domain.ErrMissingCredentials
	}
	return &ports.LoginResult{Token: resp.Token, User: user.toDomain()}, nil
}

// SignUp calls POST /user.
func (g *AuthGateway) SignUp(ctx context.Context, in ports.SignUpInput) (*domain.User, error) {
	body := wireUser{
		Email:    in.Email,
		Password: in.Password,
		Name:     in.Name,
		Role:     in.Role,
	}
	var out wireUser
	if err := g.client.Post(ctx, "/user", body, &out); err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}
	u := out.toDomain()
	return &u, nil
}

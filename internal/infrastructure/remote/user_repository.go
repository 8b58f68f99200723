package remote

import (
	"context"
	"fmt"
	"net/url"

	"github.com/foodcritique/critique-web/internal/core/domain"
	"github.com/foodcritique/critique-web/internal/core/ports"
)

type UserRepository struct {
	client ports.APIClient
}

func NewUserRepository(client ports.APIClient) *UserRepository {
	return &UserRepository{client: client}
}

// List calls GET /user (admin only on the server).
func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	var out []wireUser
	if err := r.client.Get(ctx, "/user", nil, &out); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	users := make([]domain.User, 0, len(out))
	for _, u := range out {
		users = append(users, u.toDomain())
	}
	return users, nil
}

// Get calls GET /user/:id.
func (r *UserRepository) Get(ctx context.Context, id string) (*domain.User, error) {
	var out wireUser
	if err := r.client.Get(ctx, "/user/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	u := out.toDomain()
	return &u, nil
}

// Update calls PUT /user/:id with the whole record.
func (r *UserRepository) Update(ctx context.Context, u domain.User) (*domain.User, error) {
	var out wireUser
	if err := r.client.Put(ctx, "/user/"+url.PathEscape(u.ID), fromUser(u), &out); err != nil {
		return nil, fmt.Errorf("update user %s: %w", u.ID, err)
	}
	updated := out.toDomain()
	return &updated, nil
}

package remote

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/foodcritique/critique-web/internal/core/domain"
	"github.com/foodcritique/critique-web/internal/core/ports"
)

type RestaurantRepository struct {
	client ports.APIClient
}

func NewRestaurantRepository(client ports.APIClient) *RestaurantRepository {
	return &RestaurantRepository{client: client}
}

// List calls GET /restaurant?rating=&skip=&search=. All three parameters are
// always sent.
func (r *RestaurantRepository) List(ctx context.Context, filter domain.RestaurantFilter) ([]domain.Restaurant, error) {
	f := filter.Normalize()
	query := map[string]string{
		"rating": string(f.Rating),
		"skip":   strconv.Itoa(f.Skip),
		"search": f.Search,
	}
	var out []wireRestaurant
	if err := r.client.Get(ctx, "/restaurant", query, &out); err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	list := make([]domain.Restaurant, 0, len(out))
	for _, w := range out {
		list = append(list, w.toDomain())
	}
	return list, nil
}

// Get calls GET /restaurant/:id, which embeds the restaurant's reviews.
func (r *RestaurantRepository) Get(ctx context.Context, id string) (*domain.Restaurant, error) {
	var out wireRestaurant
	if err := r.client.Get(ctx, "/restaurant/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, fmt.Errorf("get restaurant %s: %w", id, err)
	}
	rest := out.toDomain()
	return &rest, nil
}

// Create calls POST /restaurant.
func (r *RestaurantRepository) Create(ctx context.Context, rest domain.Restaurant) (*domain.Restaurant, error) {
	body := fromRestaurant(rest)
	body.ID = ""
	var out wireRestaurant
	if err := r.client.Post(ctx, "/restaurant", body, &out); err != nil {
		return nil, fmt.Errorf("create restaurant: %w", err)
	}
	created := out.toDomain()
	return &created, nil
}

// Update calls PUT /restaurant/:id. Soft delete and restore go through here
// with only the status changed.
func (r *RestaurantRepository) Update(ctx context.Context, rest domain.Restaurant) (*domain.Restaurant, error) {
	var out wireRestaurant
	if err := r.client.Put(ctx, "/restaurant/"+url.PathEscape(rest.ID), fromRestaurant(rest), &out); err != nil {
		return nil, fmt.Errorf("update restaurant %s: %w", rest.ID, err)
	}
	updated := out.toDomain()
	return &updated, nil
}

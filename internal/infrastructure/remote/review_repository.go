package remote

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/foodcritique/critique-web/internal/core/domain"
	"github.com/foodcritique/critique-web/internal/core/ports"
)

type ReviewRepository struct {
	client ports.APIClient
}

func NewReviewRepository(client ports.APIClient) *ReviewRepository {
	return &ReviewRepository{client: client}
}

// List calls GET /review?skip= (admin only on the server).
func (r *ReviewRepository) List(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, error) {
	skip := filter.Skip
	if skip < 0 {
		skip = 0
	}
	var out []wireReview
	if err := r.client.Get(ctx, "/review", map[string]string{"skip": strconv.Itoa(skip)}, &out); err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	list := make([]domain.Review, 0, len(out))
	for _, w := range out {
		list = append(list, w.toDomain())
	}
	return list, nil
}

// Create calls POST /review.
func (r *ReviewRepository) Create(ctx context.Context, rev domain.Review) (*domain.Review, error) {
	body := fromReview(rev)
	body.ID = ""
	var out wireReview
	if err := r.client.Post(ctx, "/review", body, &out); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	created := out.toDomain()
	return &created, nil
}

// Update calls PUT /review/:id.
func (r *ReviewRepository) Update(ctx context.Context, rev domain.Review) (*domain.Review, error) {
	var out wireReview
	if err := r.client.Put(ctx, "/review/"+url.PathEscape(rev.ID), fromReview(rev), &out); err != nil {
		return nil, fmt.Errorf("update review %s: %w", rev.ID, err)
	}
	updated := out.toDomain()
	return &updated, nil
}

// AddComment calls POST /review/:id/comment.
func (r *ReviewRepository) AddComment(ctx context.Context, reviewID string, c domain.ReviewComment) (*domain.Review, error) {
	var out wireReview
	if err := r.client.Post(ctx, "/review/"+url.PathEscape(reviewID)+"/comment", fromComment(c), &out); err != nil {
		return nil, fmt.Errorf("comment on review %s: %w", reviewID, err)
	}
	updated := out.toDomain()
	return &updated, nil
}

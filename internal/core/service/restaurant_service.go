package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/foodcritique/critique-web/internal/core/domain"
	"github.com/foodcritique/critique-web/internal/core/ports"
)

// RestaurantService drives the restaurants page and the restaurant detail
// page for one session.
type RestaurantService struct {
	session *Session
	repo    ports.RestaurantRepository
	reviews ports.ReviewRepository
	logger  zerolog.Logger
}

func NewRestaurantService(s *Session) *RestaurantService {
	return &RestaurantService{
		session: s,
		repo:    s.remote.Restaurants,
		reviews: s.remote.Reviews,
		logger:  s.log,
	}
}

// List fetches the restaurants page for filter and remembers the filter for
// later refetches.
func (s *RestaurantService) List(ctx context.Context, filter domain.RestaurantFilter) (RestaurantsView, error) {
	user, epoch, err := s.session.begin()
	if err != nil {
		return RestaurantsView{}, err
	}
	filter = filter.Normalize()
	coll, _, _ := s.session.collections()

	if err := s.fetch(ctx, coll, epoch, filter); err != nil {
		return RestaurantsView{}, err
	}
	s.session.mu.Lock()
	s.session.restaurantFilter = filter
	s.session.mu.Unlock()

	return newRestaurantsView(user.Role, filter, coll.Items(), coll.Loading()), nil
}

func (s *RestaurantService) fetch(ctx context.Context, coll *Collection[domain.Restaurant], epoch uint64, filter domain.RestaurantFilter) error {
	done := coll.BeginLoad()
	defer done()

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return s.session.Fail(err)
	}
	if err := s.session.settle(ctx, epoch); err != nil {
		return err
	}
	coll.Replace(items)
	return nil
}

// Create adds a restaurant owned by the current user and refetches the list
// with the last filter.
func (s *RestaurantService) Create(ctx context.Context, in ports.RestaurantInput) (RestaurantsView, error) {
	user, epoch, err := s.session.begin()
	if err != nil {
		return RestaurantsView{}, err
	}
	if !domain.CanAddRestaurant(user.Role) {
		return RestaurantsView{}, domain.ErrForbidden
	}
	if strings.TrimSpace(in.Name) == "" {
		return RestaurantsView{}, fmt.Errorf("create restaurant: %w", domain.ErrNameRequired)
	}

	image := strings.TrimSpace(in.Image)
	if image == "" {
		image = domain.DefaultRestaurantImage
	}
	created, err := s.repo.Create(ctx, domain.Restaurant{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Image:       image,
		Owner:       user.ID,
		Status:      domain.StatusActive,
	})
	if err != nil {
		return RestaurantsView{}, s.session.Fail(err)
	}
	s.logger.Info().Str("restaurant", created.ID).Msg("restaurant created")

	s.session.mu.RLock()
	filter := s.session.restaurantFilter
	s.session.mu.RUnlock()
	coll, _, _ := s.session.collections()
	if err := s.fetch(ctx, coll, epoch, filter); err != nil {
		return RestaurantsView{}, err
	}
	return newRestaurantsView(user.Role, filter, coll.Items(), coll.Loading()), nil
}

// Update edits a restaurant's name, description and image. A blank image
// keeps the current one. The status is left as it is.
func (s *RestaurantService) Update(ctx context.Context, id string, in ports.RestaurantInput) (RestaurantsView, error) {
	if strings.TrimSpace(in.Name) == "" {
		return RestaurantsView{}, fmt.Errorf("update restaurant: %w", domain.ErrNameRequired)
	}
	return s.mutate(ctx, id, func(r domain.Restaurant) (domain.Restaurant, error) {
		if !r.Status.IsActive() {
			return r, fmt.Errorf("edit inactive restaurant: %w", domain.ErrInvalidTransition)
		}
		r.Name = strings.TrimSpace(in.Name)
		r.Description = in.Description
		if image := strings.TrimSpace(in.Image); image != "" {
			r.Image = image
		}
		return r, nil
	})
}

// Deactivate soft deletes a restaurant. Nothing is removed remotely; only its
// status becomes INACTIVE.
func (s *RestaurantService) Deactivate(ctx context.Context, id string) (RestaurantsView, error) {
	return s.setStatus(ctx, id, domain.StatusInactive)
}

// Activate restores a soft deleted restaurant.
func (s *RestaurantService) Activate(ctx context.Context, id string) (RestaurantsView, error) {
	return s.setStatus(ctx, id, domain.StatusActive)
}

func (s *RestaurantService) setStatus(ctx context.Context, id string, status domain.Status) (RestaurantsView, error) {
	return s.mutate(ctx, id, func(r domain.Restaurant) (domain.Restaurant, error) {
		if !r.Status.CanTransitionTo(status) {
			return r, fmt.Errorf("restaurant %s to %s: %w", r.ID, status, domain.ErrInvalidTransition)
		}
		return r.WithStatus(status), nil
	})
}

// mutate applies change to the restaurant with id, PUTs it and splices the
// result into the list, which then keeps ACTIVE rows only.
func (s *RestaurantService) mutate(ctx context.Context, id string, change func(domain.Restaurant) (domain.Restaurant, error)) (RestaurantsView, error) {
	user, epoch, err := s.session.begin()
	if err != nil {
		return RestaurantsView{}, err
	}
	if !domain.CanManageRestaurant(user.Role) {
		return RestaurantsView{}, domain.ErrForbidden
	}
	coll, _, _ := s.session.collections()

	current, ok := coll.Find(id)
	if !ok {
		got, err := s.repo.Get(ctx, id)
		if err != nil {
			return RestaurantsView{}, s.session.Fail(err)
		}
		current = *got
	}
	current.Reviews = nil

	next, err := change(current)
	if err != nil {
		return RestaurantsView{}, err
	}
	updated, err := s.repo.Update(ctx, next)
	if err != nil {
		return RestaurantsView{}, s.session.Fail(err)
	}
	if err := s.session.settle(ctx, epoch); err != nil {
		return RestaurantsView{}, err
	}
	coll.Splice(*updated)
	s.logger.Info().Str("restaurant", updated.ID).Str("status", string(updated.Status)).Msg("restaurant updated")

	s.session.mu.RLock()
	filter := s.session.restaurantFilter
	s.session.mu.RUnlock()
	return newRestaurantsView(user.Role, filter, coll.Items(), coll.Loading()), nil
}

// Detail fetches one restaurant with its reviews.
func (s *RestaurantService) Detail(ctx context.Context, id string) (RestaurantDetailView, error) {
	user, epoch, err := s.session.begin()
	if err != nil {
		return RestaurantDetailView{}, err
	}
	r, err := s.repo.Get(ctx, id)
	if err != nil {
		return RestaurantDetailView{}, s.session.Fail(err)
	}
	if err := s.session.settle(ctx, epoch); err != nil {
		return RestaurantDetailView{}, err
	}
	s.session.mu.Lock()
	s.session.detail = r
	s.session.mu.Unlock()
	return newRestaurantDetailView(user.Role, *r), nil
}

// AddReview posts a review of restaurant id by the current user and
// refetches the detail page.
func (s *RestaurantService) AddReview(ctx context.Context, id string, in ports.ReviewInput) (RestaurantDetailView, error) {
	user, _, err := s.session.begin()
	if err != nil {
		return RestaurantDetailView{}, err
	}
	if !domain.CanAddReview(user.Role) {
		return RestaurantDetailView{}, domain.ErrForbidden
	}
	if in.Rating <= 0 || in.Rating > domain.MaxRating {
		return RestaurantDetailView{}, domain.ErrInvalidRating
	}

	_, err = s.reviews.Create(ctx, domain.Review{
		Restaurant: domain.RestaurantRef{ID: id},
		Author:     domain.UserRef{ID: user.ID, Name: user.Name, Role: user.Role},
		Rating:     in.Rating,
		Comment:    in.Comment,
		DateVisit:  in.DateVisit,
		Status:     domain.StatusActive,
	})
	if err != nil {
		return RestaurantDetailView{}, s.session.Fail(err)
	}
	s.logger.Info().Str("restaurant", id).Float64("rating", in.Rating).Msg("review added")
	return s.Detail(ctx, id)
}

package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/foodcritique/critique-web/internal/core/domain"
	"github.com/foodcritique/critique-web/internal/core/ports"
)

func restaurantsFixture(t *testing.T, as domain.User, rows []domain.Restaurant) (*fixture, *RestaurantService) {
	t.Helper()
	f := newFixture(t, KeepStaleCredentials)
	s := f.loggedInAs(t, as)
	f.restaurants.listFn = func(context.Context, domain.RestaurantFilter) ([]domain.Restaurant, error) {
		return rows, nil
	}
	return f, NewRestaurantService(s)
}

func TestRestaurantService_ListNormalizesFilter(t *testing.T) {
	f, svc := restaurantsFixture(t, jo, []domain.Restaurant{{ID: "r1", Name: "Pho", Status: domain.StatusActive}})

	view, err := svc.List(context.Background(), domain.RestaurantFilter{Rating: "9", Skip: -3, Search: "ph"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	got := f.restaurants.lists[0]
	if got.Rating != domain.RatingAny || got.Skip != 0 || got.Search != "ph" {
		t.Fatalf("unexpected filter sent: %+v", got)
	}
	if len(view.Restaurants) != 1 || view.CanAdd {
		t.Fatalf("unexpected view: %+v", view)
	}
	if !view.Restaurants[0].Clickable || view.Restaurants[0].Actions != (domain.Actions{}) {
		t.Fatalf("a USER gets a clickable card without a menu: %+v", view.Restaurants[0])
	}
}

func TestRestaurantService_ListEmpty(t *testing.T) {
	_, svc := restaurantsFixture(t, jo, nil)

	view, err := svc.List(context.Background(), domain.RestaurantFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if view.EmptyMessage != EmptyRestaurantsMessage {
		t.Fatalf("expected empty message, got %q", view.EmptyMessage)
	}
}

func TestRestaurantService_ListRequiresLogin(t *testing.T) {
	f := newFixture(t, KeepStaleCredentials)
	f.session.Bootstrap(context.Background())

	_, err := NewRestaurantService(f.session).List(context.Background(), domain.RestaurantFilter{})
	if !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestRestaurantService_CreateRefetchesWithLastFilter(t *testing.T) {
	f, svc := restaurantsFixture(t, owner, nil)
	ctx := context.Background()

	if _, err := svc.List(ctx, domain.RestaurantFilter{Rating: "3", Skip: 10}); err != nil {
		t.Fatalf("List: %v", err)
	}
	view, err := svc.Create(ctx, ports.RestaurantInput{Name: "  Taqueria  "})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	created := f.restaurants.creates[0]
	if created.Name != "Taqueria" || created.Owner != owner.ID || created.Image != domain.DefaultRestaurantImage {
		t.Fatalf("unexpected create payload: %+v", created)
	}
	if created.Status != domain.StatusActive {
		t.Fatalf("new restaurants start ACTIVE, got %s", created.Status)
	}
	if len(f.restaurants.lists) != 2 {
		t.Fatalf("expected a refetch after create, got %d lists", len(f.restaurants.lists))
	}
	if last := f.restaurants.lists[1]; last.Rating != "3" || last.Skip != 10 {
		t.Fatalf("refetch must reuse the last filter, got %+v", last)
	}
	if !view.CanAdd {
		t.Fatalf("owners may add restaurants")
	}
}

func TestRestaurantService_CreateForbiddenForUser(t *testing.T) {
	f, svc := restaurantsFixture(t, jo, nil)

	_, err := svc.Create(context.Background(), ports.RestaurantInput{Name: "X"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(f.restaurants.creates) != 0 {
		t.Fatalf("no request should be made")
	}
}

func TestRestaurantService_CreateRequiresName(t *testing.T) {
	_, svc := restaurantsFixture(t, owner, nil)

	if _, err := svc.Create(context.Background(), ports.RestaurantInput{Name: " "}); !errors.Is(err, domain.ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
}

func TestRestaurantService_DeactivateSplicesAndKeepsActive(t *testing.T) {
	rows := []domain.Restaurant{
		{ID: "r1", Name: "One", Status: domain.StatusActive},
		{ID: "r2", Name: "Two", Status: domain.StatusActive},
	}
	f, svc := restaurantsFixture(t, admin, rows)
	ctx := context.Background()
	if _, err := svc.List(ctx, domain.RestaurantFilter{}); err != nil {
		t.Fatalf("List: %v", err)
	}

	view, err := svc.Deactivate(ctx, "r1")
	if err != nil {
		t.Fatalf("Deactivate: %v", err)
	}

	if len(f.restaurants.updates) != 1 {
		t.Fatalf("expected one PUT, got %d", len(f.restaurants.updates))
	}
	put := f.restaurants.updates[0]
	if put.Status != domain.StatusInactive || put.Name != "One" {
		t.Fatalf("soft delete only changes status, got %+v", put)
	}
	if len(f.restaurants.lists) != 1 {
		t.Fatalf("splice policy must not refetch, got %d lists", len(f.restaurants.lists))
	}
	if len(view.Restaurants) != 1 || view.Restaurants[0].ID != "r2" {
		t.Fatalf("expected only r2 left, got %+v", view.Restaurants)
	}
	if view.Restaurants[0].DeletePrompt != "Two will be marked as Inactive. Are you sure?" {
		t.Fatalf("unexpected admin prompt %q", view.Restaurants[0].DeletePrompt)
	}
}

func TestRestaurantService_UpdateKeepsImageWhenBlank(t *testing.T) {
	rows := []domain.Restaurant{{ID: "r1", Name: "One", Image: "one.png", Status: domain.StatusActive}}
	f, svc := restaurantsFixture(t, admin, rows)
	ctx := context.Background()
	if _, err := svc.List(ctx, domain.RestaurantFilter{}); err != nil {
		t.Fatalf("List: %v", err)
	}

	if _, err := svc.Update(ctx, "r1", ports.RestaurantInput{Name: "One bis", Image: "  "}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if _, err := svc.Update(ctx, "r1", ports.RestaurantInput{Name: "One ter", Image: " new.png "}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if len(f.restaurants.updates) != 2 {
		t.Fatalf("expected two PUTs, got %d", len(f.restaurants.updates))
	}
	if got := f.restaurants.updates[0].Image; got != "one.png" {
		t.Fatalf("blank image must keep the current one, got %q", got)
	}
	if got := f.restaurants.updates[1].Image; got != "new.png" {
		t.Fatalf("expected the new image, got %q", got)
	}
}

func TestRestaurantService_ActivateUnknownFetchesFirst(t *testing.T) {
	f, svc := restaurantsFixture(t, admin, nil)
	f.restaurants.getFn = func(_ context.Context, id string) (*domain.Restaurant, error) {
		return &domain.Restaurant{ID: id, Name: "Gone", Status: domain.StatusInactive, Reviews: []domain.Review{{ID: "x"}}}, nil
	}

	if _, err := svc.Activate(context.Background(), "r9"); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	put := f.restaurants.updates[0]
	if put.Status != domain.StatusActive {
		t.Fatalf("expected ACTIVE, got %s", put.Status)
	}
	if put.Reviews != nil {
		t.Fatalf("embedded reviews must not be sent back")
	}
}

func TestRestaurantService_InvalidTransition(t *testing.T) {
	rows := []domain.Restaurant{{ID: "r1", Status: domain.StatusActive}}
	f, svc := restaurantsFixture(t, owner, rows)
	ctx := context.Background()
	_, _ = svc.List(ctx, domain.RestaurantFilter{})

	if _, err := svc.Activate(ctx, "r1"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if len(f.restaurants.updates) != 0 {
		t.Fatalf("no PUT expected")
	}
}

func TestRestaurantService_UpdateFailureNotifies(t *testing.T) {
	rows := []domain.Restaurant{{ID: "r1", Name: "One", Status: domain.StatusActive}}
	f, svc := restaurantsFixture(t, owner, rows)
	ctx := context.Background()
	_, _ = svc.List(ctx, domain.RestaurantFilter{})
	f.restaurants.updateFn = func(context.Context, domain.Restaurant) (*domain.Restaurant, error) {
		return nil, domain.NewRemoteError(http.StatusForbidden, "Not your restaurant")
	}

	if _, err := svc.Update(ctx, "r1", ports.RestaurantInput{Name: "New"}); err == nil {
		t.Fatalf("expected error")
	}
	if got := f.session.Notifications().Latest(); got != "Not your restaurant" {
		t.Fatalf("unexpected notification %q", got)
	}
	coll, _, _ := f.session.collections()
	if r, _ := coll.Find("r1"); r.Name != "One" {
		t.Fatalf("failed update must leave the list untouched, got %q", r.Name)
	}
}

func TestRestaurantService_Detail(t *testing.T) {
	f, svc := restaurantsFixture(t, jo, nil)
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	f.restaurants.getFn = func(_ context.Context, id string) (*domain.Restaurant, error) {
		return &domain.Restaurant{ID: id, Name: "Pho", Reviews: []domain.Review{
			{ID: "a", Rating: 3, UpdatedOn: day},
			{},
			{ID: "b", Rating: 5, UpdatedOn: day.Add(48 * time.Hour)},
			{ID: "c", Rating: 1, UpdatedOn: day.Add(24 * time.Hour)},
		}}, nil
	}

	view, err := svc.Detail(context.Background(), "r1")
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}
	if view.RatingsLabel != "3 ratings" {
		t.Fatalf("expected 3 ratings, got %q", view.RatingsLabel)
	}
	if view.Highest == nil || view.Highest.ID != "b" || view.Lowest.ID != "c" {
		t.Fatalf("unexpected highest/lowest: %+v / %+v", view.Highest, view.Lowest)
	}
	order := []string{view.Reviews[0].ID, view.Reviews[1].ID, view.Reviews[2].ID}
	if order[0] != "b" || order[1] != "c" || order[2] != "a" {
		t.Fatalf("expected newest first b,c,a; got %v", order)
	}
	if !view.CanAddReview {
		t.Fatalf("users may add reviews")
	}
}

func TestRestaurantService_AddReview(t *testing.T) {
	f, svc := restaurantsFixture(t, jo, nil)
	f.restaurants.getFn = func(_ context.Context, id string) (*domain.Restaurant, error) {
		return &domain.Restaurant{ID: id, Name: "Pho"}, nil
	}
	visit := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	view, err := svc.AddReview(context.Background(), "r1", ports.ReviewInput{Rating: 4, Comment: "Great", DateVisit: visit})
	if err != nil {
		t.Fatalf("AddReview: %v", err)
	}
	got := f.reviews.creates[0]
	if got.Restaurant.ID != "r1" || got.Author.ID != jo.ID || got.Rating != 4 || !got.DateVisit.Equal(visit) {
		t.Fatalf("unexpected review payload: %+v", got)
	}
	if view.Restaurant.ID != "r1" {
		t.Fatalf("expected the detail to be refetched")
	}
}

func TestRestaurantService_AddReviewValidation(t *testing.T) {
	f, svc := restaurantsFixture(t, jo, nil)
	ctx := context.Background()

	for _, rating := range []float64{0, -1, 5.5} {
		if _, err := svc.AddReview(ctx, "r1", ports.ReviewInput{Rating: rating}); !errors.Is(err, domain.ErrInvalidRating) {
			t.Fatalf("rating %v: expected ErrInvalidRating, got %v", rating, err)
		}
	}
	if len(f.reviews.creates) != 0 {
		t.Fatalf("no request should be made")
	}

	of, osvc := restaurantsFixture(t, owner, nil)
	if _, err := osvc.AddReview(ctx, "r1", ports.ReviewInput{Rating: 4}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("owners may not review, got %v", err)
	}
	if len(of.reviews.creates) != 0 {
		t.Fatalf("no request should be made")
	}
}

package service

import (
	"fmt"
	"sort"

	"github.com/foodcritique/critique-web/internal/core/domain"
)

const (
	EmptyRestaurantsMessage = "No restaurants yet."
	EmptyReviewsMessage     = "No reviews added yet. Be the first one to add a review."
	NoRatingsLabel          = "No ratings yet"
	EmptyModerationMessage  = "No reviews yet."
	EmptyUsersMessage       = "No users yet."
)

// SessionView is the header model: who is logged in and what they may open.
type SessionView struct {
	State    State        `json:"state"`
	User     *domain.User `json:"user,omitempty"`
	Initials string       `json:"initials,omitempty"`
	Tabs     []string     `json:"tabs,omitempty"`
}

// NewSessionView builds the header model for ctx.
func NewSessionView(ctx SessionContext) SessionView {
	v := SessionView{State: ctx.State, User: ctx.User}
	if ctx.User != nil {
		v.Initials = domain.InitialsFromName(ctx.User.Name)
		v.Tabs = domain.AdminTabs(ctx.User.Role)
	}
	return v
}

// RestaurantCard is one tile of the restaurants page.
type RestaurantCard struct {
	domain.Restaurant
	Actions      domain.Actions `json:"actions"`
	Clickable    bool           `json:"clickable"`
	DeletePrompt string         `json:"delete_prompt,omitempty"`
}

// RestaurantsView is the restaurants page.
type RestaurantsView struct {
	Loading      bool             `json:"loading"`
	CanAdd       bool             `json:"can_add"`
	Rating       string           `json:"rating"`
	Skip         int              `json:"skip"`
	Search       string           `json:"search,omitempty"`
	Restaurants  []RestaurantCard `json:"restaurants"`
	EmptyMessage string           `json:"empty_message,omitempty"`
}

func newRestaurantsView(role domain.Role, f domain.RestaurantFilter, items []domain.Restaurant, loading bool) RestaurantsView {
	v := RestaurantsView{
		Loading:     loading,
		CanAdd:      domain.CanAddRestaurant(role),
		Rating:      string(f.Rating),
		Skip:        f.Skip,
		Search:      f.Search,
		Restaurants: make([]RestaurantCard, 0, len(items)),
	}
	manage := domain.CanManageRestaurant(role)
	for _, r := range items {
		r.Reviews = nil
		card := RestaurantCard{
			Restaurant: r,
			Actions:    domain.MenuActions(manage, r.Status),
			Clickable:  domain.CanOpenRestaurant(role),
		}
		if card.Actions.Delete {
			card.DeletePrompt = domain.DeleteConfirmation(role, r.Name)
		}
		v.Restaurants = append(v.Restaurants, card)
	}
	if len(v.Restaurants) == 0 && !loading {
		v.EmptyMessage = EmptyRestaurantsMessage
	}
	return v
}

// ReviewCard is one review as rendered on the detail and moderation pages.
type ReviewCard struct {
	domain.Review
	Initials string         `json:"initials"`
	Inactive bool           `json:"inactive"`
	CanReply bool           `json:"can_reply"`
	Actions  domain.Actions `json:"actions"`
	// RestaurantName is shown in the card header for admins.
	RestaurantName string `json:"restaurant_name,omitempty"`
}

func newReviewCard(role domain.Role, r domain.Review, restaurantName string) ReviewCard {
	c := ReviewCard{
		Review:   r,
		Initials: domain.InitialsFromName(r.Author.Name),
		Inactive: !r.Status.IsActive(),
		CanReply: domain.CanReply(role, r),
		Actions:  domain.MenuActions(domain.CanModerateReviews(role), r.Status),
	}
	if role == domain.RoleAdmin {
		c.RestaurantName = restaurantName
		if c.RestaurantName == "" {
			c.RestaurantName = r.Restaurant.Name
		}
	}
	return c
}

// RestaurantDetailView is the single restaurant page.
type RestaurantDetailView struct {
	Restaurant   domain.Restaurant `json:"restaurant"`
	RatingsLabel string            `json:"ratings_label"`
	CanAddReview bool              `json:"can_add_review"`
	Highest      *ReviewCard       `json:"highest,omitempty"`
	Lowest       *ReviewCard       `json:"lowest,omitempty"`
	Reviews      []ReviewCard      `json:"reviews"`
	EmptyMessage string            `json:"empty_message,omitempty"`
}

// newRestaurantDetailView drops empty reviews, orders the rest newest first
// and, when there are more than two, picks the highest and lowest rated.
func newRestaurantDetailView(role domain.Role, r domain.Restaurant) RestaurantDetailView {
	reviews := make([]domain.Review, 0, len(r.Reviews))
	for _, rev := range r.Reviews {
		if !rev.IsEmpty() {
			reviews = append(reviews, rev)
		}
	}
	r.Reviews = nil

	v := RestaurantDetailView{
		Restaurant:   r,
		RatingsLabel: RatingsLabel(len(reviews)),
		CanAddReview: domain.CanAddReview(role),
		Reviews:      make([]ReviewCard, 0, len(reviews)),
	}

	if len(reviews) > 2 {
		byRating := append([]domain.Review(nil), reviews...)
		sort.SliceStable(byRating, func(i, j int) bool { return byRating[i].Rating > byRating[j].Rating })
		hi := newReviewCard(role, byRating[0], r.Name)
		lo := newReviewCard(role, byRating[len(byRating)-1], r.Name)
		v.Highest, v.Lowest = &hi, &lo
	}

	sort.SliceStable(reviews, func(i, j int) bool { return reviews[i].UpdatedOn.After(reviews[j].UpdatedOn) })
	for _, rev := range reviews {
		v.Reviews = append(v.Reviews, newReviewCard(role, rev, r.Name))
	}
	if len(v.Reviews) == 0 {
		v.EmptyMessage = EmptyReviewsMessage
	}
	return v
}

// RatingsLabel renders the review count under a restaurant's average.
func RatingsLabel(n int) string {
	if n == 0 {
		return NoRatingsLabel
	}
	return fmt.Sprintf("%d ratings", n)
}

// ReviewsView is the admin moderation page.
type ReviewsView struct {
	Loading      bool         `json:"loading"`
	Skip         int          `json:"skip"`
	Reviews      []ReviewCard `json:"reviews"`
	EmptyMessage string       `json:"empty_message,omitempty"`
}

func newReviewsView(role domain.Role, f domain.ReviewFilter, items []domain.Review, loading bool) ReviewsView {
	v := ReviewsView{Loading: loading, Skip: f.Skip, Reviews: make([]ReviewCard, 0, len(items))}
	for _, r := range items {
		v.Reviews = append(v.Reviews, newReviewCard(role, r, ""))
	}
	if len(v.Reviews) == 0 && !loading {
		v.EmptyMessage = EmptyModerationMessage
	}
	return v
}

// UserRow is one line of the users page.
type UserRow struct {
	domain.User
	Initials string         `json:"initials"`
	Actions  domain.Actions `json:"actions"`
}

// UsersView is the admin users page.
type UsersView struct {
	Loading      bool      `json:"loading"`
	Users        []UserRow `json:"users"`
	EmptyMessage string    `json:"empty_message,omitempty"`
}

func newUsersView(role domain.Role, items []domain.User, loading bool) UsersView {
	v := UsersView{Loading: loading, Users: make([]UserRow, 0, len(items))}
	manage := domain.CanManageUsers(role)
	for _, u := range items {
		v.Users = append(v.Users, UserRow{
			User:     u,
			Initials: domain.InitialsFromName(u.Name),
			Actions:  domain.MenuActions(manage, u.Status),
		})
	}
	if len(v.Users) == 0 && !loading {
		v.EmptyMessage = EmptyUsersMessage
	}
	return v
}

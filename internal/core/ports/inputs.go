package ports

import (
	"time"

	"github.com/foodcritique/critique-web/internal/core/domain"
)

// RestaurantInput carries the restaurant form.
type RestaurantInput struct {
	Name        string
	Description string
	Image       string
}

// ReviewInput carries the add-review form.
type ReviewInput struct {
	Rating    float64
	Comment   string
	DateVisit time.Time
}

// ReviewEdit carries the admin review form. Reply replaces the text of the
// first reply comment, creating it when the review has none.
type ReviewEdit struct {
	Rating    float64
	Comment   string
	DateVisit time.Time
	Reply     string
}

// UserEdit carries the admin user form.
type UserEdit struct {
	Name   string
	Role   domain.Role
	Status domain.Status
}

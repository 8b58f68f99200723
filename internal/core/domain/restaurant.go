package domain

import "time"

// DefaultRestaurantImage is used when a new restaurant is created without one.
const DefaultRestaurantImage = "https://source.unsplash.com/800x600?food"

// Restaurant is a listing owned by an OWNER account.
type Restaurant struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	ImageBase64 string    `json:"image_base64,omitempty"`
	Owner       string    `json:"owner"`
	Status      Status    `json:"status"`
	AvgRating   float64   `json:"avg_rating"`
	CreatedOn   time.Time `json:"created_on,omitempty"`
	UpdatedOn   time.Time `json:"updated_on,omitempty"`

	// Reviews is only populated by the single-restaurant fetch.
	Reviews []Review `json:"reviews,omitempty"`
}

func (r Restaurant) EntityID() string     { return r.ID }
func (r Restaurant) EntityStatus() Status { return r.Status }
func (r Restaurant) WithStatus(s Status) Restaurant {
	r.Status = s
	return r
}

// RatingFilter is the minimum-rating filter offered on the restaurants page.
// "0" means no filter.
type RatingFilter string

const RatingAny RatingFilter = "0"

// Valid reports whether f is one of "0".."5".
func (f RatingFilter) Valid() bool {
	return len(f) == 1 && f[0] >= '0' && f[0] <= '5'
}

// RestaurantFilter carries the query parameters of GET /restaurant.
type RestaurantFilter struct {
	Rating RatingFilter
	Skip   int
	Search string
}

// Normalize fills defaults: an invalid or empty rating becomes "0" and a
// negative skip becomes 0.
func (f RestaurantFilter) Normalize() RestaurantFilter {
	if !f.Rating.Valid() {
		f.Rating = RatingAny
	}
	if f.Skip < 0 {
		f.Skip = 0
	}
	return f
}

package remote

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/foodcritique/critique-web/internal/core/domain"
)

// The types in this file mirror the JSON owned by the remote API. They are
// kept apart from domain types so the wire contract can drift independently.

// wireTime accepts RFC 3339 timestamps, null, or an empty string. Anything it
// cannot parse decodes to the zero time rather than failing the whole payload.
type wireTime struct{ time.Time }

func (t *wireTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil || s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "01/02/2006", "2006-01-02"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	t.Time = time.Time{}
	return nil
}

func (t wireTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

type wireUser struct {
	ID        string        `json:"_id,omitempty"`
	Name      string        `json:"name,omitempty"`
	Email     string        `json:"email,omitempty"`
	Password  string        `json:"password,omitempty"`
	Role      domain.Role   `json:"role,omitempty"`
	Status    domain.Status `json:"status,omitempty"`
	CreatedOn wireTime      `json:"createdOn,omitzero"`
	UpdatedOn wireTime      `json:"updatedOn,omitzero"`
}

func (w wireUser) toDomain() domain.User {
	return domain.User{
		ID:        w.ID,
		Name:      w.Name,
		Email:     w.Email,
		Role:      w.Role,
		Status:    w.Status,
		CreatedOn: w.CreatedOn.Time,
		UpdatedOn: w.UpdatedOn.Time,
	}
}

func fromUser(u domain.User) wireUser {
	return wireUser{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role,
		Status: u.Status,
	}
}

// userRef decodes either a bare id string or an expanded user object.
type userRef struct {
	ID   string      `json:"_id"`
	Name string      `json:"name,omitempty"`
	Role domain.Role `json:"role,omitempty"`
}

func (r *userRef) UnmarshalJSON(b []byte) error {
	if id, ok := bareID(b); ok {
		*r = userRef{ID: id}
		return nil
	}
	type plain userRef
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*r = userRef(p)
	return nil
}

// restaurantRef decodes either a bare id string or an expanded restaurant.
type restaurantRef struct {
	ID   string `json:"_id"`
	Name string `json:"name,omitempty"`
}

func (r *restaurantRef) UnmarshalJSON(b []byte) error {
	if id, ok := bareID(b); ok {
		*r = restaurantRef{ID: id}
		return nil
	}
	type plain restaurantRef
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*r = restaurantRef(p)
	return nil
}

func bareID(b []byte) (string, bool) {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return "", true
	}
	if len(b) == 0 || b[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return "", false
	}
	return s, true
}

type wireRestaurant struct {
	ID          string        `json:"_id,omitempty"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Image       string        `json:"image,omitempty"`
	ImageBase64 string        `json:"imageBase64,omitempty"`
	Owner       string        `json:"owner"`
	Status      domain.Status `json:"status"`
	AvgRating   float64       `json:"avgRating,omitempty"`
	CreatedOn   wireTime      `json:"createdOn,omitzero"`
	UpdatedOn   wireTime      `json:"updatedOn,omitzero"`
	Reviews     []*wireReview `json:"reviews,omitempty"`
}

func (w wireRestaurant) toDomain() domain.Restaurant {
	r := domain.Restaurant{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		Image:       w.Image,
		ImageBase64: w.ImageBase64,
		Owner:       w.Owner,
		Status:      w.Status,
		AvgRating:   w.AvgRating,
		CreatedOn:   w.CreatedOn.Time,
		UpdatedOn:   w.UpdatedOn.Time,
	}
	for _, rev := range w.Reviews {
		if rev == nil {
			r.Reviews = append(r.Reviews, domain.Review{})
			continue
		}
		r.Reviews = append(r.Reviews, rev.toDomain())
	}
	return r
}

func fromRestaurant(r domain.Restaurant) wireRestaurant {
	return wireRestaurant{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Image:       r.Image,
		Owner:       r.Owner,
		Status:      r.Status,
	}
}

type wireComment struct {
	ID        string        `json:"_id,omitempty"`
	Author    userRef       `json:"author"`
	Comment   string        `json:"comment"`
	Status    domain.Status `json:"status"`
	CreatedOn wireTime      `json:"createdOn,omitzero"`
	UpdatedOn wireTime      `json:"updatedOn,omitzero"`
}

func (w wireComment) toDomain() domain.ReviewComment {
	return domain.ReviewComment{
		ID:        w.ID,
		Author:    domain.UserRef{ID: w.Author.ID, Name: w.Author.Name, Role: w.Author.Role},
		Comment:   w.Comment,
		Status:    w.Status,
		CreatedOn: w.CreatedOn.Time,
		UpdatedOn: w.UpdatedOn.Time,
	}
}

func fromComment(c domain.ReviewComment) wireComment {
	return wireComment{
		ID:      c.ID,
		Author:  userRef{ID: c.Author.ID, Name: c.Author.Name, Role: c.Author.Role},
		Comment: c.Comment,
		Status:  c.Status,
	}
}

type wireReview struct {
	ID            string        `json:"_id,omitempty"`
	Restaurant    restaurantRef `json:"restaurant"`
	Author        userRef       `json:"author"`
	Rating        float64       `json:"rating"`
	Comment       string        `json:"comment,omitempty"`
	DateVisit     wireTime      `json:"dateVisit,omitzero"`
	Status        domain.Status `json:"status,omitempty"`
	CreatedOn     wireTime      `json:"createdOn,omitzero"`
	UpdatedOn     wireTime      `json:"updatedOn,omitzero"`
	OtherComments []wireComment `json:"otherComments,omitempty"`
}

func (w wireReview) toDomain() domain.Review {
	r := domain.Review{
		ID:         w.ID,
		Restaurant: domain.RestaurantRef{ID: w.Restaurant.ID, Name: w.Restaurant.Name},
		Author:     domain.UserRef{ID: w.Author.ID, Name: w.Author.Name, Role: w.Author.Role},
		Rating:     w.Rating,
		Comment:    w.Comment,
		DateVisit:  w.DateVisit.Time,
		Status:     w.Status,
		CreatedOn:  w.CreatedOn.Time,
		UpdatedOn:  w.UpdatedOn.Time,
	}
	for _, c := range w.OtherComments {
		r.OtherComments = append(r.OtherComments, c.toDomain())
	}
	return r
}

func fromReview(r domain.Review) wireReview {
	w := wireReview{
		ID:         r.ID,
		Restaurant: restaurantRef{ID: r.Restaurant.ID, Name: r.Restaurant.Name},
		Author:     userRef{ID: r.Author.ID, Name: r.Author.Name, Role: r.Author.Role},
		Rating:     r.Rating,
		Comment:    r.Comment,
		DateVisit:  wireTime{r.DateVisit},
		Status:     r.Status,
	}
	for _, c := range r.OtherComments {
		w.OtherComments = append(w.OtherComments, fromComment(c))
	}
	return w
}

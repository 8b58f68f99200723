package domain

import (
	"strings"
	"time"
)

const MaxRating = 5.0

// Review is a visitor's rating of a restaurant plus owner/admin replies.
type Review struct {
	ID            string          `json:"id"`
	Restaurant    RestaurantRef   `json:"restaurant"`
	Author        UserRef         `json:"author"`
	Rating        float64         `json:"rating"`
	Comment       string          `json:"comment,omitempty"`
	DateVisit     time.Time       `json:"date_visit,omitempty"`
	Status        Status          `json:"status,omitempty"`
	CreatedOn     time.Time       `json:"created_on,omitempty"`
	UpdatedOn     time.Time       `json:"updated_on,omitempty"`
	OtherComments []ReviewComment `json:"other_comments,omitempty"`
}

func (r Review) EntityID() string     { return r.ID }
func (r Review) EntityStatus() Status { return r.Status }
func (r Review) WithStatus(s Status) Review {
	r.Status = s
	return r
}

// IsEmpty reports whether r carries no data at all. The detail payload may
// contain placeholders for reviews that were since removed from the index.
func (r Review) IsEmpty() bool {
	return r.ID == "" && r.Rating == 0 && r.Comment == "" && r.Author.ID == ""
}

// Reply returns the first reply comment, which is the one the owner edits.
func (r Review) Reply() (ReviewComment, bool) {
	if len(r.OtherComments) == 0 {
		return ReviewComment{}, false
	}
	return r.OtherComments[0], true
}

// HasReplyText reports whether the first reply holds any non-blank text.
func (r Review) HasReplyText() bool {
	c, ok := r.Reply()
	return ok && strings.TrimSpace(c.Comment) != ""
}

// ReviewComment is an owner or admin reply attached to a review.
type ReviewComment struct {
	ID        string    `json:"id,omitempty"`
	Author    UserRef   `json:"author"`
	Comment   string    `json:"comment"`
	Status    Status    `json:"status"`
	CreatedOn time.Time `json:"created_on,omitempty"`
	UpdatedOn time.Time `json:"updated_on,omitempty"`
}

// UserRef is a reference to a user that may or may not have been expanded
// by the API.
type UserRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	Role Role   `json:"role,omitempty"`
}

// RestaurantRef is a reference to a restaurant that may or may not have been
// expanded by the API.
type RestaurantRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// ReviewFilter carries the query parameters of GET /review.
type ReviewFilter struct {
	Skip int
}

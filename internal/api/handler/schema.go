package handler

import (
	"time"

	"github.com/foodcritique/critique-web/internal/core/service"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect,omitempty"`
}

// --- Session ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type signUpRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,strongpassword"`
	Role     string `json:"role"     validate:"required,oneof=USER OWNER"`
}

type redirectResponse struct {
	Redirect string `json:"redirect"`
}

type notificationsResponse struct {
	Notifications []service.Notification `json:"notifications"`
}

// --- Restaurants ---

type restaurantsQuery struct {
	Rating string `query:"rating"`
	Skip   int    `query:"skip"`
	Search string `query:"search"`
}

type restaurantRequest struct {
	Name        string `json:"name"        validate:"required,restaurantname"`
	Description string `json:"description"`
	Image       string `json:"image"       validate:"omitempty,url"`
}

type reviewRequest struct {
	Rating    float64   `json:"rating"     validate:"gt=0,lte=5"`
	Comment   string    `json:"comment"`
	DateVisit time.Time `json:"date_visit"`
}

// --- Reviews ---

type reviewsQuery struct {
	Skip int `query:"skip"`
}

type reviewEditRequest struct {
	Rating    float64   `json:"rating"     validate:"gt=0,lte=5"`
	Comment   string    `json:"comment"`
	DateVisit time.Time `json:"date_visit"`
	Reply     string    `json:"reply"`
}

type commentRequest struct {
	Comment string `json:"comment" validate:"required"`
}

// --- Users ---

type userEditRequest struct {
	Name   string `json:"name"`
	Role   string `json:"role"   validate:"omitempty,oneof=USER OWNER ADMIN"`
	Status string `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

package handler

import (
	"strings"

	"github.com/foodcritique/critique-web/internal/core/domain"
	"github.com/foodcritique/critique-web/internal/core/ports"
)

// --- Request → Service input ---

func toSignUpInput(req signUpRequest) ports.SignUpInput {
	return ports.SignUpInput{
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
		Name:     strings.TrimSpace(req.Name),
		Role:     domain.Role(req.Role),
	}
}

func toRestaurantFilter(q restaurantsQuery) domain.RestaurantFilter {
	return domain.RestaurantFilter{
		Rating: domain.RatingFilter(q.Rating),
		Skip:   q.Skip,
		Search: strings.TrimSpace(q.Search),
	}.Normalize()
}

func toRestaurantInput(req restaurantRequest) ports.RestaurantInput {
	return ports.RestaurantInput{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Image:       strings.TrimSpace(req.Image),
	}
}

func toReviewInput(req reviewRequest) ports.ReviewInput {
	return ports.ReviewInput{Rating: req.Rating, Comment: req.Comment, DateVisit: req.DateVisit}
}

func toReviewEdit(req reviewEditRequest) ports.ReviewEdit {
	return ports.ReviewEdit{
		Rating:    req.Rating,
		Comment:   req.Comment,
		DateVisit: req.DateVisit,
		Reply:     req.Reply,
	}
}

func toUserEdit(req userEditRequest) ports.UserEdit {
	return ports.UserEdit{
		Name:   req.Name,
		Role:   domain.Role(req.Role),
		Status: domain.Status(req.Status),
	}
}

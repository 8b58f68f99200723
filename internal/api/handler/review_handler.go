package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/foodcritique/critique-web/internal/core/domain"
	"github.com/foodcritique/critique-web/internal/core/service"
)

// ReviewHandler serves the admin moderation page and review replies.
type ReviewHandler struct{}

func NewReviewHandler() *ReviewHandler {
	return &ReviewHandler{}
}

func reviewService(c echo.Context) (*service.ReviewService, error) {
	s, err := ctxSession(c)
	if err != nil {
		return nil, err
	}
	return service.NewReviewService(s), nil
}

// List handles GET /api/reviews.
//
// @Summary      Review moderation page
// @Tags         reviews
// @Produce      json
// @Param        skip  query     int  false  "Offset"
// @Success      200   {object}  service.ReviewsView
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/reviews [get]
func (h *ReviewHandler) List(c echo.Context) error {
	svc, err := reviewService(c)
	if err != nil {
		return err
	}
	var q reviewsQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	view, err := svc.List(c.Request().Context(), domain.ReviewFilter{Skip: q.Skip})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Update handles PUT /api/reviews/:id.
//
// @Summary      Edit a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Review id"
// @Param        body  body      reviewEditRequest  true  "Review form"
// @Success      200   {object}  service.ReviewsView
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/reviews/{id} [put]
func (h *ReviewHandler) Update(c echo.Context) error {
	svc, err := reviewService(c)
	if err != nil {
		return err
	}
	var req reviewEditRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	view, err := svc.Update(c.Request().Context(), c.Param("id"), toReviewEdit(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Deactivate handles POST /api/reviews/:id/deactivate.
//
// @Summary      Soft delete a review
// @Tags         reviews
// @Produce      json
// @Param        id   path      string  true  "Review id"
// @Success      200  {object}  service.ReviewsView
// @Failure      403  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/reviews/{id}/deactivate [post]
func (h *ReviewHandler) Deactivate(c echo.Context) error {
	svc, err := reviewService(c)
	if err != nil {
		return err
	}
	view, err := svc.Deactivate(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Activate handles POST /api/reviews/:id/activate.
//
// @Summary      Restore a review
// @Tags         reviews
// @Produce      json
// @Param        id   path      string  true  "Review id"
// @Success      200  {object}  service.ReviewsView
// @Failure      403  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/reviews/{id}/activate [post]
func (h *ReviewHandler) Activate(c echo.Context) error {
	svc, err := reviewService(c)
	if err != nil {
		return err
	}
	view, err := svc.Activate(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Reply handles POST /api/reviews/:id/comments.
//
// @Summary      Reply to a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        id    path      string          true  "Review id"
// @Param        body  body      commentRequest  true  "Reply"
// @Success      201   {object}  service.ReviewCard
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/reviews/{id}/comments [post]
func (h *ReviewHandler) Reply(c echo.Context) error {
	svc, err := reviewService(c)
	if err != nil {
		return err
	}
	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	card, err := svc.Reply(c.Request().Context(), c.Param("id"), req.Comment)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, card)
}

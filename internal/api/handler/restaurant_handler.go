package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/foodcritique/critique-web/internal/core/service"
)

// RestaurantHandler serves the restaurants page and the restaurant detail
// page.
type RestaurantHandler struct{}

func NewRestaurantHandler() *RestaurantHandler {
	return &RestaurantHandler{}
}

func restaurantService(c echo.Context) (*service.RestaurantService, error) {
	s, err := ctxSession(c)
	if err != nil {
		return nil, err
	}
	return service.NewRestaurantService(s), nil
}

// List handles GET /api/restaurants.
//
// @Summary      Restaurants page
// @Tags         restaurants
// @Produce      json
// @Param        rating  query     string  false  "Minimum rating filter, 0 to 5"
// @Param        skip    query     int     false  "Offset"
// @Param        search  query     string  false  "Name search"
// @Success      200     {object}  service.RestaurantsView
// @Failure      401     {object}  errorResponse
// @Router       /api/restaurants [get]
func (h *RestaurantHandler) List(c echo.Context) error {
	svc, err := restaurantService(c)
	if err != nil {
		return err
	}
	var q restaurantsQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	view, err := svc.List(c.Request().Context(), toRestaurantFilter(q))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Create handles POST /api/restaurants.
//
// @Summary      Add a restaurant
// @Tags         restaurants
// @Accept       json
// @Produce      json
// @Param        body  body      restaurantRequest  true  "Restaurant form"
// @Success      201   {object}  service.RestaurantsView
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/restaurants [post]
func (h *RestaurantHandler) Create(c echo.Context) error {
	svc, err := restaurantService(c)
	if err != nil {
		return err
	}
	var req restaurantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	view, err := svc.Create(c.Request().Context(), toRestaurantInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, view)
}

// Update handles PUT /api/restaurants/:id.
//
// @Summary      Edit a restaurant
// @Tags         restaurants
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Restaurant id"
// @Param        body  body      restaurantRequest  true  "Restaurant form"
// @Success      200   {object}  service.RestaurantsView
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/restaurants/{id} [put]
func (h *RestaurantHandler) Update(c echo.Context) error {
	svc, err := restaurantService(c)
	if err != nil {
		return err
	}
	var req restaurantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	view, err := svc.Update(c.Request().Context(), c.Param("id"), toRestaurantInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Deactivate handles POST /api/restaurants/:id/deactivate.
//
// @Summary      Soft delete a restaurant
// @Tags         restaurants
// @Produce      json
// @Param        id   path      string  true  "Restaurant id"
// @Success      200  {object}  service.RestaurantsView
// @Failure      403  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/restaurants/{id}/deactivate [post]
func (h *RestaurantHandler) Deactivate(c echo.Context) error {
	svc, err := restaurantService(c)
	if err != nil {
		return err
	}
	view, err := svc.Deactivate(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Activate handles POST /api/restaurants/:id/activate.
//
// @Summary      Restore a restaurant
// @Tags         restaurants
// @Produce      json
// @Param        id   path      string  true  "Restaurant id"
// @Success      200  {object}  service.RestaurantsView
// @Failure      403  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/restaurants/{id}/activate [post]
func (h *RestaurantHandler) Activate(c echo.Context) error {
	svc, err := restaurantService(c)
	if err != nil {
		return err
	}
	view, err := svc.Activate(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Detail handles GET /api/restaurants/:id.
//
// @Summary      Restaurant detail page
// @Tags         restaurants
// @Produce      json
// @Param        id   path      string  true  "Restaurant id"
// @Success      200  {object}  service.RestaurantDetailView
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/restaurants/{id} [get]
func (h *RestaurantHandler) Detail(c echo.Context) error {
	svc, err := restaurantService(c)
	if err != nil {
		return err
	}
	view, err := svc.Detail(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// AddReview handles POST /api/restaurants/:id/reviews.
//
// @Summary      Add a review
// @Tags         restaurants
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Restaurant id"
// @Param        body  body      reviewRequest  true  "Review form"
// @Success      201   {object}  service.RestaurantDetailView
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/restaurants/{id}/reviews [post]
func (h *RestaurantHandler) AddReview(c echo.Context) error {
	svc, err := restaurantService(c)
	if err != nil {
		return err
	}
	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	view, err := svc.AddReview(c.Request().Context(), c.Param("id"), toReviewInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, view)
}

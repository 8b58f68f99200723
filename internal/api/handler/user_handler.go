package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/foodcritique/critique-web/internal/core/service"
)

// UserHandler serves the admin users page.
type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

func userService(c echo.Context) (*service.UserService, error) {
	s, err := ctxSession(c)
	if err != nil {
		return nil, err
	}
	return service.NewUserService(s), nil
}

// List handles GET /api/users.
//
// @Summary      Users page
// @Tags         users
// @Produce      json
// @Success      200  {object}  service.UsersView
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	svc, err := userService(c)
	if err != nil {
		return err
	}
	view, err := svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Update handles PUT /api/users/:id.
//
// @Summary      Edit a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      string           true  "User id"
// @Param        body  body      userEditRequest  true  "User form"
// @Success      200   {object}  service.UsersView
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	svc, err := userService(c)
	if err != nil {
		return err
	}
	var req userEditRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	view, err := svc.Update(c.Request().Context(), c.Param("id"), toUserEdit(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Deactivate handles POST /api/users/:id/deactivate.
//
// @Summary      Soft delete a user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  service.UsersView
// @Failure      403  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/users/{id}/deactivate [post]
func (h *UserHandler) Deactivate(c echo.Context) error {
	svc, err := userService(c)
	if err != nil {
		return err
	}
	view, err := svc.Deactivate(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Activate handles POST /api/users/:id/activate.
//
// @Summary      Restore a user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  service.UsersView
// @Failure      403  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/users/{id}/activate [post]
func (h *UserHandler) Activate(c echo.Context) error {
	svc, err := userService(c)
	if err != nil {
		return err
	}
	view, err := svc.Activate(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

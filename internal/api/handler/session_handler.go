package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/foodcritique/critique-web/internal/core/service"
)

// SessionHandler serves the login, sign-up and logout forms and the header
// model built from the session context.
type SessionHandler struct{}

func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

// Get handles GET /api/session.
//
// @Summary      Current session
// @Description  Who is logged in, their initials and the admin tabs they see.
// @Tags         session
// @Produce      json
// @Success      200  {object}  service.SessionView
// @Router       /api/session [get]
func (h *SessionHandler) Get(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, service.NewSessionView(s.Context()))
}

// Login handles POST /api/session/login.
//
// @Summary      Log in
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  service.SessionView
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/session/login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := s.Login(c.Request().Context(), req.Email, req.Password); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, service.NewSessionView(s.Context()))
}

// SignUp handles POST /api/session/signup.
//
// @Summary      Sign up and log in
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      signUpRequest  true  "Registration form"
// @Success      201   {object}  service.SessionView
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/session/signup [post]
func (h *SessionHandler) SignUp(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := s.SignUp(c.Request().Context(), toSignUpInput(req)); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, service.NewSessionView(s.Context()))
}

// Logout handles POST /api/session/logout. Logging out twice is harmless.
//
// @Summary      Log out
// @Tags         session
// @Produce      json
// @Success      200  {object}  redirectResponse
// @Router       /api/session/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, redirectResponse{Redirect: s.Logout(c.Request().Context())})
}

// Notifications handles GET /api/notifications. Reading dismisses.
//
// @Summary      Pending notifications
// @Tags         session
// @Produce      json
// @Success      200  {object}  notificationsResponse
// @Router       /api/notifications [get]
func (h *SessionHandler) Notifications(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notificationsResponse{Notifications: s.Notifications().Drain()})
}

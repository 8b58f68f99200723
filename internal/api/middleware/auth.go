package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/foodcritique/critique-web/internal/api/handler"
	"github.com/foodcritique/critique-web/internal/core/service"
)

// Auth rejects visitors whose session is not authenticated and injects the
// current user's id and role into the context.
func Auth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s, ok := c.Get(handler.SessionKey).(*service.Session)
			if !ok || s == nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
			}
			user, err := s.RequireUser()
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
			}

			c.Set("user_id", user.ID)
			c.Set("role", string(user.Role))

			return next(c)
		}
	}
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/foodcritique/critique-web/internal/core/service"
)

// SessionKey is the echo context key the Visitor middleware stores the
// visitor's session under.
const SessionKey = "session"

// ctxSession returns the session injected by the Visitor middleware. Its
// absence means the route was registered without the middleware.
func ctxSession(c echo.Context) (*service.Session, error) {
	s, ok := c.Get(SessionKey).(*service.Session)
	if !ok || s == nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "visitor session missing")
	}
	return s, nil
}

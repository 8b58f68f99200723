package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/foodcritique/critique-web/internal/api/handler"
	"github.com/foodcritique/critique-web/internal/core/service"
)

// VisitorCookie is the name of the signed cookie identifying a browser.
const VisitorCookie = "critique_visitor"

// VisitorTokens issues and verifies visitor tokens.
type VisitorTokens interface {
	Issue() (id, token string, err error)
	Parse(token string) (string, error)
}

// Sessions hands out the bootstrapped session of a visitor.
type Sessions interface {
	Session(ctx context.Context, visitorID string) *service.Session
}

// Visitor identifies the browser by its signed cookie, minting a new visitor
// id when the cookie is missing or does not verify, and injects that
// visitor's session into the context.
func Visitor(tokens VisitorTokens, sessions Sessions, secure bool, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var visitorID string
			if ck, err := c.Cookie(VisitorCookie); err == nil {
				if id, err := tokens.Parse(ck.Value); err == nil {
					visitorID = id
				}
			}

			if visitorID == "" {
				id, token, err := tokens.Issue()
				if err != nil {
					log.Error().Err(err).Msg("failed to issue visitor token")
					return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
				}
				visitorID = id
				c.SetCookie(&http.Cookie{
					Name:     VisitorCookie,
					Value:    token,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set("visitor_id", visitorID)
			c.Set(handler.SessionKey, sessions.Session(c.Request().Context(), visitorID))
			return next(c)
		}
	}
}

package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/foodcritique/critique-web/docs"
	"github.com/foodcritique/critique-web/internal/api/handler"
	"github.com/foodcritique/critique-web/internal/api/middleware"
	"github.com/foodcritique/critique-web/internal/core/domain"
)

// Deps is everything the router needs from the composition root.
type Deps struct {
	Visitors     middleware.VisitorTokens
	Sessions     middleware.Sessions
	SecureCookie bool
	// Health lists the dependencies the readiness probe pings, by name.
	Health map[string]handler.Pinger
	Log    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddleware("critique"))

	// --- Health probes, metrics, docs (no visitor required) ---
	healthHandler := handler.NewHealthHandler(deps.Health)
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Visitor routes ---
	api := e.Group("/api", middleware.Visitor(deps.Visitors, deps.Sessions, deps.SecureCookie, deps.Log))

	sessionHandler := handler.NewSessionHandler()
	api.GET("/session", sessionHandler.Get)
	api.POST("/session/login", sessionHandler.Login)
	api.POST("/session/signup", sessionHandler.SignUp)
	api.POST("/session/logout", sessionHandler.Logout)
	api.GET("/notifications", sessionHandler.Notifications)

	// --- Pages (authenticated, role-gated) ---
	auth := middleware.Auth()
	owner := middleware.RBAC(domain.RoleOwner)
	manager := middleware.RBAC(domain.RoleOwner, domain.RoleAdmin)
	reviewer := middleware.RBAC(domain.RoleUser)
	admin := middleware.RBAC(domain.RoleAdmin)

	restaurantHandler := handler.NewRestaurantHandler()
	api.GET("/restaurants", restaurantHandler.List, auth)
	api.POST("/restaurants", restaurantHandler.Create, auth, owner)
	api.GET("/restaurants/:id", restaurantHandler.Detail, auth)
	api.PUT("/restaurants/:id", restaurantHandler.Update, auth, manager)
	api.POST("/restaurants/:id/deactivate", restaurantHandler.Deactivate, auth, manager)
	api.POST("/restaurants/:id/activate", restaurantHandler.Activate, auth, manager)
	api.POST("/restaurants/:id/reviews", restaurantHandler.AddReview, auth, reviewer)

	reviewHandler := handler.NewReviewHandler()
	api.GET("/reviews", reviewHandler.List, auth, admin)
	api.PUT("/reviews/:id", reviewHandler.Update, auth, admin)
	api.POST("/reviews/:id/deactivate", reviewHandler.Deactivate, auth, admin)
	api.POST("/reviews/:id/activate", reviewHandler.Activate, auth, admin)
	api.POST("/reviews/:id/comments", reviewHandler.Reply, auth, manager)

	userHandler := handler.NewUserHandler()
	api.GET("/users", userHandler.List, auth, admin)
	api.PUT("/users/:id", userHandler.Update, auth, admin)
	api.POST("/users/:id/deactivate", userHandler.Deactivate, auth, admin)
	api.POST("/users/:id/activate", userHandler.Activate, auth, admin)

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/flatfinder/flatfinder-api/docs"
	"github.com/flatfinder/flatfinder-api/internal/api/handler"
	"github.com/flatfinder/flatfinder-api/internal/api/middleware"
	"github.com/flatfinder/flatfinder-api/internal/core/authz"
	"github.com/flatfinder/flatfinder-api/internal/core/ports"
	"github.com/flatfinder/flatfinder-api/internal/infrastructure/http/handlers"
)

// Dependencies groups everything the router wires into handlers.
type Dependencies struct {
	Log      zerolog.Logger
	Resolver middleware.SessionResolver

	Auth     ports.AuthService
	Users    ports.UserService
	Listings ports.ListingService
	Messages ports.MessageService

	// Readiness lists the backing services checked by /health/ready.
	Readiness []handlers.Dependency
	// Swagger mounts the API docs UI on /swagger/*.
	Swagger bool
	// Metrics mounts request metrics and the /metrics endpoint.
	Metrics bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Log))
	if deps.Metrics {
		e.Use(echoprometheus.NewMiddleware("flatfinder"))
		e.GET("/metrics", echoprometheus.NewHandler())
	}

	authHandler := handler.NewAuthHandler(deps.Auth)
	userHandler := handler.NewUserHandler(deps.Users)
	listingHandler := handler.NewListingHandler(deps.Listings)
	messageHandler := handler.NewMessageHandler(deps.Messages)
	requireAuth := middleware.Auth(deps.Resolver)

	// --- Accounts ---
	e.POST("/users/register", authHandler.Register)
	e.POST("/users/login", authHandler.Login)

	users := e.Group("/users", requireAuth)
	users.POST("/logout", authHandler.Logout)
	users.GET("", userHandler.List, middleware.Require(authz.RuleListUsers, authz.CanListUsers))
	users.GET("/:id", userHandler.Get)
	users.PATCH("", userHandler.Update)
	users.DELETE("", userHandler.Delete)
	users.POST("/favorites/:listingId", userHandler.AddFavorite)
	users.DELETE("/favorites/:listingId", userHandler.RemoveFavorite)

	// --- Listings and their messages ---
	listings := e.Group("/listings", requireAuth)
	listings.GET("", listingHandler.List)
	listings.POST("", listingHandler.Create)
	listings.PATCH("", listingHandler.Update)
	listings.DELETE("", listingHandler.Delete)
	listings.GET("/:id", listingHandler.Get)
	listings.PATCH("/:id", listingHandler.Update)
	listings.DELETE("/:id", listingHandler.Delete)
	listings.GET("/:id/messages", messageHandler.ListForListing)
	listings.POST("/:id/messages", messageHandler.Create)
	listings.GET("/:id/messages/:senderId", messageHandler.ListForSender)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewReadinessHandler(deps.Log, deps.Readiness...)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	if deps.Swagger {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	return e
}

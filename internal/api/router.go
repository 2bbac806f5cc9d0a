package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/storefront/storefront-api/docs" // registers the swagger spec

	"github.com/storefront/storefront-api/internal/api/handler"
	"github.com/storefront/storefront-api/internal/api/middleware"
	"github.com/storefront/storefront-api/internal/core/ports"
)

const bodyLimit = "1M"

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	Auth      ports.AuthService
	Addresses ports.AddressService
	Tokens    ports.TokenAuthenticator
	Health    map[string]handler.Pinger
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(middleware.RequestMetrics())
	e.Use(echomiddleware.BodyLimit(bodyLimit))

	authn := middleware.Auth(deps.Tokens)
	admin := middleware.RequireAdmin(deps.Tokens)

	authHandler := handler.NewAuthHandler(deps.Auth)
	userHandler := handler.NewUserHandler(deps.Auth)
	addressHandler := handler.NewAddressHandler(deps.Addresses)

	users := e.Group("/users")

	// --- Public ---
	users.POST("/register", authHandler.Register)
	users.POST("/login", authHandler.Login)

	// --- Self-service (any valid token) ---
	users.POST("/logout", authHandler.Logout, authn)
	users.GET("/me", userHandler.GetMe, authn)
	users.PUT("/me", userHandler.UpdateMe, authn)
	users.DELETE("/me", userHandler.DeleteMe, authn)
	users.POST("/me/addresses", addressHandler.Add, authn)
	users.GET("/me/addresses", addressHandler.List, authn)
	users.DELETE("/me/addresses/:addressId", addressHandler.Delete, authn)

	// --- Administrative (admin or manager) ---
	users.GET("/all", userHandler.List, admin)
	users.GET("/:userId", userHandler.GetByID, admin)
	users.PUT("/:userId", userHandler.UpdateByID, admin)
	users.DELETE("/:userId", userHandler.DeleteByID, admin)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler(deps.Health, deps.Log)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)

	// --- Operations ---
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

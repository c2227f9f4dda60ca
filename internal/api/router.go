package api

import (
	"fmt"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/repertoire/contacts-api/docs" // registers the OpenAPI document

	"github.com/repertoire/contacts-api/internal/api/handler"
	"github.com/repertoire/contacts-api/internal/api/middleware"
	"github.com/repertoire/contacts-api/internal/core/ports"
	"github.com/repertoire/contacts-api/internal/core/service"
	rediscache "github.com/repertoire/contacts-api/internal/infrastructure/db/redis"
	"github.com/repertoire/contacts-api/internal/infrastructure/db/sqlstore"
)

// Dependencies are the long-lived resources opened by main.
type Dependencies struct {
	Store *sqlstore.Store
	// Cache is nil when no Redis address is configured.
	Cache *rediscache.ContactCache

	BcryptCost     int
	AllowedOrigins []string
	Logger         zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	origins := deps.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     origins,
		AllowHeaders:     []string{"*"},
		AllowCredentials: true,
		// With the "*" default the request origin is echoed back, since
		// browsers drop credentialed responses carrying a literal "*".
		UnsafeWildcardOriginWithAllowCredentials: true,
	}))
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(middleware.Metrics())

	// --- Dependencies ---
	var (
		cache       ports.ContactCache
		cachePinger handler.Pinger
	)
	if deps.Cache != nil {
		cache, cachePinger = deps.Cache, deps.Cache
	}

	userRepo := sqlstore.NewUserRepository(deps.Store)
	authService, err := service.NewAuthService(userRepo, deps.BcryptCost, deps.Logger.With().Str("service", "auth").Logger())
	if err != nil {
		return nil, fmt.Errorf("auth service: %w", err)
	}
	authHandler := handler.NewAuthHandler(authService)

	personRepo := sqlstore.NewPersonRepository(deps.Store)
	personService := service.NewPersonService(personRepo, cache, deps.Logger.With().Str("service", "persons").Logger())
	personHandler := handler.NewPersonHandler(personService)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Contact routes, scoped by the owner in the path ---
	scoped := middleware.UserScope()
	personnes := e.Group("/personnes")
	personnes.POST("", personHandler.Create)
	personnes.GET("/:user_id", personHandler.List, scoped)
	personnes.GET("/search/:user_id/:query", personHandler.Search, scoped)
	personnes.GET("/detail/:user_id/:person_id", personHandler.Get, scoped)
	personnes.PUT("/:user_id/:person_id", personHandler.Update, scoped)
	personnes.DELETE("/:user_id/:person_id", personHandler.Delete, scoped)

	// --- Health probes ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Store, cachePinger)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}

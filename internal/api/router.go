package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/storely/catalog-api/docs"
	"github.com/storely/catalog-api/internal/api/handler"
	"github.com/storely/catalog-api/internal/api/middleware"
	"github.com/storely/catalog-api/internal/core/domain"
	"github.com/storely/catalog-api/internal/core/password"
	"github.com/storely/catalog-api/internal/core/ports"
	"github.com/storely/catalog-api/internal/core/service"
	"github.com/storely/catalog-api/internal/core/token"
)

// Dependencies carries everything the router needs. Mongo and Redis are only
// used by the readiness probe and may be nil (the probe is then not
// registered); Registry may be nil to use the global Prometheus registry.
type Dependencies struct {
	Users    ports.UserRepository
	Products ports.ProductRepository
	Tokens   *token.Manager
	Hasher   *password.Hasher
	Limiter  service.LoginLimiter

	Mongo    *mongo.Database
	Redis    *redis.Client
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	if deps.Registry != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Subsystem:  "catalog",
			Registerer: deps.Registry,
		}))
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
			Gatherer: deps.Registry,
		}))
	} else {
		e.Use(echoprometheus.NewMiddleware("catalog"))
		e.GET("/metrics", echoprometheus.NewHandler())
	}

	// --- Services and handlers ---
	authService := service.NewAuthService(deps.Users, deps.Hasher, deps.Tokens, deps.Limiter, log)
	userService := service.NewUserService(deps.Users)
	productService := service.NewProductService(deps.Products, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	productHandler := handler.NewProductHandler(productService)

	authn := middleware.Authenticate(deps.Tokens, deps.Users)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- API routes ---
	apiGroup := e.Group("/api")
	apiGroup.GET("/products", productHandler.List)
	apiGroup.POST("/products", productHandler.Create,
		authn, middleware.RequireRole(domain.RoleAdmin, domain.RoleManager))
	apiGroup.DELETE("/products/:id", productHandler.Delete,
		authn, middleware.RequireRole(domain.RoleAdmin))
	apiGroup.GET("/users/me", userHandler.Me, authn)
	apiGroup.GET("/users", userHandler.List,
		authn, middleware.RequireRole(domain.RoleAdmin))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness) // liveness – is the process alive?
	if deps.Mongo != nil && deps.Redis != nil {
		readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)
		e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	}

	// --- API docs ---
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

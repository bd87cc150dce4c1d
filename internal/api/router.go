package api

import (
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	_ "github.com/userhub/account-system/docs" // swagger docs registration
	"github.com/userhub/account-system/internal/api/handler"
	"github.com/userhub/account-system/internal/api/middleware"
	"github.com/userhub/account-system/internal/core/domain"
	"github.com/userhub/account-system/internal/core/service"
	"github.com/userhub/account-system/internal/infrastructure/config"
	"github.com/userhub/account-system/internal/infrastructure/db/postgres"
	redisdb "github.com/userhub/account-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *sqlx.DB, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("accounts"))

	// --- Dependencies ---
	repo := postgres.NewUserRepository(db)
	cache := redisdb.NewIdentityCache(rdb)
	hasher := service.NewBcryptHasher()
	tokens := service.NewTokenService(cfg.Auth.Secret, cfg.Auth.Algorithm, cfg.Auth.TokenTTL())
	authService := service.NewAuthService(repo, hasher, tokens)
	userService := service.NewUserService(repo, hasher, cache, log)
	guard := service.NewAccessGuard(tokens, repo, cache, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)

	// --- Auth routes ---
	e.POST("/auth/token", authHandler.Login)
	e.POST("/auth/register", authHandler.Register)

	// --- User routes ---
	users := e.Group("/users")
	users.GET("/me", userHandler.Me, middleware.Auth(guard))
	users.GET("", userHandler.List, middleware.RBAC(guard, domain.RoleSuperuser, "staff"))
	users.PUT("/update", userHandler.Update, middleware.Auth(guard))
	users.PUT("/change_password", userHandler.ChangePassword, middleware.Auth(guard))
	users.DELETE("/:id", userHandler.Delete, middleware.Superuser(guard))

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	return e
}

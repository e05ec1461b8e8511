package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/userhub/identity-service/internal/api/handler"
	"github.com/userhub/identity-service/internal/api/middleware"
	"github.com/userhub/identity-service/internal/core/domain"
	"github.com/userhub/identity-service/internal/core/service"
	"github.com/userhub/identity-service/internal/infrastructure/config"
	mongodb "github.com/userhub/identity-service/internal/infrastructure/db/mongo"
	redisdb "github.com/userhub/identity-service/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("identity"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	ownerCache := redisdb.NewOwnerCache(rdb, userRepo, 0)

	hasher := service.NewPasswordHasher(cfg.BcryptCost)
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, tokens, hasher, log)
	userService := service.NewUserService(userRepo, hasher, ownerCache, log)
	roleService := service.NewRoleService(roleRepo, log)
	evaluator := service.NewAccessService(ownerCache, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService, log)
	roleHandler := handler.NewRoleHandler(roleService)
	contentHandler := handler.NewContentHandler()

	authenticated := middleware.Auth(tokens)
	adminOnly := middleware.RequireAnyRole(evaluator, domain.RoleAdmin)
	adminOrOwner := middleware.RequireAdminOrOwner(evaluator)
	anyRole := middleware.RequireAnyRole(evaluator, domain.RoleUser, domain.RoleModerator, domain.RoleAdmin)
	modOnly := middleware.RequireAnyRole(evaluator, domain.RoleModerator)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/signin", authHandler.SignIn)
	auth.POST("/signup", authHandler.SignUp)

	// --- User routes ---
	users := e.Group("/api/users", authenticated)
	users.GET("", userHandler.List, adminOnly)
	users.GET("/:id", userHandler.Get, adminOrOwner)
	users.PUT("/:id", userHandler.Update, adminOrOwner)
	users.PUT("/:id/password", userHandler.UpdatePassword, adminOrOwner)
	users.DELETE("/:id", userHandler.Delete, adminOnly)

	// --- Role routes ---
	e.GET("/api/roles", roleHandler.List, authenticated, adminOnly)

	// --- Role-gated probe content ---
	content := e.Group("/api/content")
	content.GET("/public", contentHandler.Public)
	content.GET("/user", contentHandler.User, authenticated, anyRole)
	content.GET("/mod", contentHandler.Moderator, authenticated, modOnly)
	content.GET("/admin", contentHandler.Admin, authenticated, adminOnly)

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	return e
}

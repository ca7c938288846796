package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/platformlab/auth-api/docs"
	"github.com/platformlab/auth-api/internal/api/handler"
	"github.com/platformlab/auth-api/internal/api/middleware"
	"github.com/platformlab/auth-api/internal/core/service"
	"github.com/platformlab/auth-api/internal/infrastructure/config"
	mongostore "github.com/platformlab/auth-api/internal/infrastructure/db/mongo"
	redisstore "github.com/platformlab/auth-api/internal/infrastructure/db/redis"
	"github.com/platformlab/auth-api/internal/infrastructure/token"
)

// NewRouter builds the Echo instance with all dependencies wired and all
// routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("auth"))

	// --- Dependencies ---
	userRepo := mongostore.NewUserRepository(db)
	profileCache := redisstore.NewProfileCache(rdb)
	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, tokens, profileCache, log)

	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(authService)
	bearer := middleware.BearerToken()

	// --- Welcome route: a small machine-readable endpoint directory ---
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"message": "Welcome to the Auth API",
			"endpoints": map[string]any{
				"register": "POST /register",
				"login":    "POST /login",
				"profile": map[string]string{
					"get":    "GET /profile/:id",
					"update": "PUT /profile/:id",
					"delete": "DELETE /profile/:id",
				},
			},
		})
	})

	// --- Auth routes ---
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)

	// --- Profile routes (bearer token required) ---
	e.GET("/profile/:id", profileHandler.Get, bearer)
	e.PUT("/profile/:id", profileHandler.Update, bearer)
	e.DELETE("/profile/:id", profileHandler.Delete, bearer)

	// --- Health probes ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(db, rdb).Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}

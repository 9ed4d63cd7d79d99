package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/steelcraft/erp-api/docs"
	"github.com/steelcraft/erp-api/internal/api/handler"
	"github.com/steelcraft/erp-api/internal/api/middleware"
	"github.com/steelcraft/erp-api/internal/core/service"
	mongodb "github.com/steelcraft/erp-api/internal/infrastructure/db/mongo"
	redisdb "github.com/steelcraft/erp-api/internal/infrastructure/db/redis"
	"github.com/steelcraft/erp-api/internal/infrastructure/queue"
)

// RouterDeps carries the external collaborators the router wires together.
type RouterDeps struct {
	Mongo     *mongo.Database
	Redis     *redis.Client
	Storage   StorageDeps
	JWTSecret string
	Log       zerolog.Logger
}

// StorageDeps groups the media host adapter and its background cleanup queue.
type StorageDeps struct {
	Media   *service.MediaService
	Cleanup *queue.CleanupDispatcher
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("erp"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(deps.Mongo)
	enquiryRepo := mongodb.NewEnquiryRepository(deps.Mongo)
	sequencer := redisdb.NewSequenceAllocator(deps.Redis)

	authService := service.NewAuthService(userRepo, deps.Storage.Media, deps.Storage.Cleanup, deps.JWTSecret, 0, deps.Log)
	enquiryService := service.NewEnquiryService(enquiryRepo, sequencer, deps.Log)

	authHandler := handler.NewAuthHandler(authService)
	enquiryHandler := handler.NewEnquiryHandler(enquiryService)
	uploadHandler := handler.NewUploadHandler(deps.Storage.Media)

	authRequired := middleware.Auth(deps.JWTSecret, userRepo)

	// --- User routes ---
	users := e.Group("/api/users")
	users.POST("", authHandler.Register)
	users.POST("/login", authHandler.Login)
	users.GET("/profile", authHandler.Profile, authRequired)
	users.PUT("/profile", authHandler.UpdateProfile, authRequired)

	// --- Enquiry routes ---
	// Everything past Create is intended admin-only; no role model exists
	// yet, so these stay unauthenticated. Tracked as a hardening gap.
	enquiries := e.Group("/api/enquiries")
	enquiries.POST("", enquiryHandler.Create)
	enquiries.GET("", enquiryHandler.List)
	enquiries.GET("/custom/:displayId", enquiryHandler.GetByEnquiryID)
	enquiries.GET("/:id", enquiryHandler.Get)
	enquiries.PUT("/:id", enquiryHandler.UpdateStatus)
	enquiries.DELETE("/:id", enquiryHandler.Delete)

	// --- Upload routes ---
	uploads := e.Group("/api/uploads", authRequired)
	uploads.POST("/image", uploadHandler.Single)
	uploads.POST("/images", uploadHandler.Many)
	uploads.DELETE("/:publicId", uploadHandler.Delete)

	// --- Health probes and operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}

// ERP API server.
//
// @title        ERP API
// @version      1.0
// @description  Manufacturing ERP backend: users, enquiries and image uploads.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/steelcraft/erp-api/internal/api"
	"github.com/steelcraft/erp-api/internal/core/service"
	mongodb "github.com/steelcraft/erp-api/internal/infrastructure/db/mongo"
	redisdb "github.com/steelcraft/erp-api/internal/infrastructure/db/redis"
	"github.com/steelcraft/erp-api/internal/infrastructure/media/cloudinary"
	"github.com/steelcraft/erp-api/internal/infrastructure/queue"
	"github.com/steelcraft/erp-api/internal/pkg/config"
	"github.com/steelcraft/erp-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	jwtSecret, insecure := cfg.JWTSecretInUse()
	if insecure {
		log.Warn().Msg("JWT_SECRET is not set, using the insecure development fallback")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	userRepo := mongodb.NewUserRepository(db)
	enquiryRepo := mongodb.NewEnquiryRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := enquiryRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("enquiry index creation failed")
	}

	// --- Redis (sequence allocator) ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	// Seed the display-id counter from the current collection size so a
	// fresh counter continues the existing ENQ sequence.
	count, err := enquiryRepo.Count(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("enquiry count failed")
	}
	if err := redisdb.NewSequenceAllocator(rdb).Seed(ctx, count); err != nil {
		log.Warn().Err(err).Msg("sequence seeding failed, allocator may start from zero")
	}

	// --- Media host ---
	storage, err := cloudinary.New(cloudinary.Config{
		URL:       cfg.Cloudinary.URL,
		CloudName: cfg.Cloudinary.CloudName,
		APIKey:    cfg.Cloudinary.APIKey,
		APISecret: cfg.Cloudinary.APISecret,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("media storage init failed")
	}

	mediaService := service.NewMediaService(storage, log)
	cleanup := queue.NewCleanupDispatcher(0, storage, log)
	cleanup.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(api.RouterDeps{
		Mongo:     db,
		Redis:     rdb,
		Storage:   api.StorageDeps{Media: mediaService, Cleanup: cleanup},
		JWTSecret: jwtSecret,
		Log:       log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("erp api listening")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

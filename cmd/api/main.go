package main

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/recipeshare/backend/config"
	"github.com/pageza/recipeshare/backend/internal/api"
	"github.com/pageza/recipeshare/backend/internal/database"
	"github.com/pageza/recipeshare/backend/internal/logging"
	"github.com/pageza/recipeshare/backend/internal/server"
	"github.com/pageza/recipeshare/backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: os.Stderr})
	logging.Info().Str("environment", string(cfg.Environment)).Msg("configuration loaded")

	// Initialize database
	db, err := database.Open(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to database")
	}
	if cfg.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			logging.Fatal().Err(err).Msg("failed to migrate database")
		}
	}

	// Redis only backs rate limiting; run without it when unreachable
	var redisClient *redis.Client
	if cfg.RedisURL != "" || cfg.RedisHost != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisClient, err = database.NewRedisClient(ctx, cfg)
		cancel()
		if err != nil {
			logging.Warn().Err(err).Msg("redis unavailable, rate limiting disabled")
			redisClient = nil
		}
	}

	var store service.ObjectStore
	if cfg.S3BucketName != "" {
		s3cfg, err := config.NewS3Config(context.Background(), cfg)
		if err != nil {
			logging.Fatal().Err(err).Msg("failed to initialize S3")
		}
		store = s3cfg
	} else {
		logging.Warn().Msg("S3_BUCKET_NAME not set, image uploads disabled")
	}

	deps := api.NewDeps(db, cfg, service.NewEmailService(cfg), store, redisClient)
	srv, err := server.New(cfg, deps)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to build server")
	}

	if err := srv.Run(context.Background()); err != nil {
		logging.Fatal().Err(err).Msg("server error")
	}

	if redisClient != nil {
		_ = redisClient.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logging.Info().Msg("server stopped")
}

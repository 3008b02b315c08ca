package main

import (
	"context" // context package is needed for Redis operations
	"os"      // Exit codes

	"foodgram/internal/api"      // Custom package for API handlers
	"foodgram/internal/config"   // Custom package for configuration
	"foodgram/internal/db"       // Database connection
	"foodgram/internal/service"  // Business operations
	"foodgram/internal/storage"  // Image stores
	"foodgram/internal/store"    // Repository
	"foodgram/internal/utils"    // Cache
	"foodgram/internal/validate" // Request validation tags

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg, err := config.LoadConfig() // Load configuration
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	setupLogger(cfg)

	// Connect to the database
	gdb, err := db.Open(db.Options{Driver: cfg.DBDriver, DSN: cfg.DSN(), Debug: cfg.DBDebug})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	ctx := context.Background()
	cache := setupCache(ctx, cfg)
	images, mediaDir := setupImages(ctx, cfg)

	if err := validate.RegisterBinding(); err != nil {
		logrus.Fatalf("failed to register validators: %v", err)
	}

	svc := service.New(service.Options{
		Store:     store.New(gdb),
		Images:    images,
		Cache:     cache,
		CacheTTL:  cfg.CacheTTL,
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
	})

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}
	r := api.NewRouter(api.Deps{
		Service:     svc,
		PublicURL:   cfg.PublicURL,
		MediaDir:    mediaDir,
		MediaURL:    cfg.MediaURL,
		CORSOrigins: cfg.CORSOrigins,
	})
	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	logrus.WithFields(logrus.Fields{"port": cfg.AppPort, "driver": cfg.DBDriver, "storage": cfg.Storage}).Info("Server running")
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func setupLogger(cfg *config.Config) {
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Warnf("unknown log level %q, using info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// setupCache connects to Redis; without REDIS_ADDR caching and token
// revocation are disabled.
func setupCache(ctx context.Context, cfg *config.Config) utils.Cache {
	if cfg.RedisAddr == "" {
		logrus.Warn("REDIS_ADDR not set, running without cache")
		return utils.NopCache{}
	}
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})
	// Test Redis connection
	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}
	return utils.NewRedisCache(redisClient)
}

// setupImages returns the image store and, for local storage, the directory
// the router should serve.
func setupImages(ctx context.Context, cfg *config.Config) (storage.ImageStore, string) {
	switch cfg.Storage {
	case "s3":
		s3, err := storage.NewS3Store(ctx, storage.S3Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})
		if err != nil {
			logrus.Fatalf("failed to configure S3: %v", err)
		}
		return s3, ""
	case "local", "":
		if err := os.MkdirAll(cfg.MediaDir, 0o755); err != nil {
			logrus.Fatalf("failed to create media dir: %v", err)
		}
		return storage.NewLocalStore(cfg.MediaDir, cfg.MediaURL), cfg.MediaDir
	}
	logrus.Fatalf("unknown STORAGE %q", cfg.Storage)
	return nil, ""
}

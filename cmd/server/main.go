package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/fashionstore/storefront/internal/api"
	"github.com/fashionstore/storefront/internal/api/handler"
	"github.com/fashionstore/storefront/internal/core/ports"
	"github.com/fashionstore/storefront/internal/core/service"
	mongodb "github.com/fashionstore/storefront/internal/infrastructure/db/mongo"
	redisdb "github.com/fashionstore/storefront/internal/infrastructure/db/redis"
	"github.com/fashionstore/storefront/internal/infrastructure/queue"
	"github.com/fashionstore/storefront/internal/infrastructure/storage"
	"github.com/fashionstore/storefront/internal/pkg/config"
	"github.com/fashionstore/storefront/internal/pkg/slugs"
	"github.com/fashionstore/storefront/pkg/logger"
)

const shutdownTimeout = 30 * time.Second

func main() {
	os.Exit(exitCode(run(), os.Stderr))
}

// exitCode reports a startup or serve failure as one structured log line.
// Failures can happen before the root logger exists, so it writes to w.
func exitCode(err error, w io.Writer) int {
	if err == nil {
		return 0
	}
	l := zerolog.New(w).With().Timestamp().Str("service", "storefront").Logger()
	l.Error().Err(err).Msg("server exited with error")
	return 1
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.IsDevelopment()})
	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("starting storefront api")

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	redisClient, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer redisClient.Close()

	userRepo := mongodb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(db, slugs.New("product"))
	categoryRepo := mongodb.NewCategoryRepository(db, slugs.New("category"))
	if err := mongodb.EnsureIndexes(ctx, userRepo, productRepo, categoryRepo); err != nil {
		return err
	}

	images, err := newImageStore(cfg.Cloudinary, log)
	if err != nil {
		return err
	}

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.CleanupWorkers, images, logger.Component("image-cleanup"))
	dispatcher.Start(workerCtx)

	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, tokens, logger.Component("auth"))
	categoryService := service.NewCategoryService(categoryRepo, logger.Component("categories"))
	productService := service.NewProductService(
		productRepo,
		categoryRepo,
		categoryService,
		images,
		dispatcher,
		logger.Component("products"),
	)

	if cfg.Admin.Email != "" && cfg.Admin.Password != "" {
		if err := authService.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			cancelWorkers()
			return fmt.Errorf("bootstrap admin: %w", err)
		}
	}

	e := api.NewRouter(api.Dependencies{
		Products:    productService,
		Categories:  categoryService,
		Auth:        authService,
		Tokens:      tokens,
		AuthLimiter: redisdb.NewFixedWindowLimiter(redisClient, "auth", cfg.RateLimit.Requests, cfg.RateLimit.Window),
		Health: map[string]handler.Pinger{
			"mongodb": mongodb.NewPinger(mongoClient),
			"redis":   redisdb.NewPinger(redisClient),
		},
		Log: logger.Component("http"),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err = <-serveErr:
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		log.Error().Err(shutdownErr).Msg("server forced to shutdown")
	}

	cancelWorkers()
	dispatcher.Wait()
	log.Info().Msg("shutdown complete")
	return err
}

func newImageStore(cfg config.CloudinaryConfig, log zerolog.Logger) (ports.ImageStore, error) {
	if cfg.CloudName == "" {
		log.Warn().Msg("cloudinary not configured, image uploads disabled")
		return storage.DisabledStore{}, nil
	}
	return storage.NewCloudinaryStore(storage.CloudinaryConfig{
		CloudName: cfg.CloudName,
		APIKey:    cfg.APIKey,
		APISecret: cfg.APISecret,
		Folder:    cfg.Folder,
	})
}

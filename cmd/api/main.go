package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"assustadus/internal/app/user"
	"assustadus/internal/cache"
	"assustadus/internal/config"
	"assustadus/internal/db"
	"assustadus/internal/db/repository"
	"assustadus/internal/http/handlers/health"
	"assustadus/internal/http/handlers/root"
	userhandler "assustadus/internal/http/handlers/user"
	"assustadus/internal/http/router"
	"assustadus/internal/kafka"
	"assustadus/internal/logging"
	"assustadus/internal/telemetry"
)

//go:generate swag init -g cmd/api/main.go -d ../../ -o ../../internal/http/apidocs --packageName apidocs

// @title        Assustadus API
// @version      1.0
// @description  User management service.
// @BasePath     /
func main() {
	// Top-level context with graceful shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1) Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 2) Initialize logger
	logger := logging.New(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceEnv,
		cfg.LogLevel,
	)

	logger.Info("starting service",
		"env", cfg.Environment,
	)

	// 3) Initialize telemetry (OpenTelemetry)
	otelShutdown, err := telemetry.Setup(ctx, cfg.Observability, logger)
	if err != nil {
		logger.Error("failed to setup telemetry", "error", err)
		os.Exit(1)
	}
	// ensure we flush / shut down exporter on exit
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := otelShutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown telemetry", "error", err)
		}
	}()

	// 4) Initialize Postgres
	dbClient, err := db.NewClient(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Error("failed to init database", "error", err)
		os.Exit(1)
	}
	defer func(dbClient *db.Client) {
		_ = dbClient.Close()
	}(dbClient)

	// 5) Initialize Redis (optional)
	var (
		userCache   cache.UserCache = cache.NoopUserCache{}
		redisPinger health.Pinger
	)
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis, logger)
		if err != nil {
			logger.Error("failed to init redis", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error("failed to close redis", "error", err)
			}
		}()
		userCache = cache.NewUserCache(redisClient)
		redisPinger = redisClient
	}

	// 6) Initialize Kafka bus (Watermill)
	bus, closeBus, err := kafka.NewBus(cfg.Kafka, logger)
	if err != nil {
		logger.Error("failed to init kafka bus", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = closeBus(context.Background())
	}()

	// 7) Kafka router (audit consumer)
	kafkaRouter, err := kafka.NewRouter(ctx, cfg.Kafka, logger)
	if err != nil {
		logger.Error("failed to init kafka router", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = kafkaRouter.Close(context.Background())
	}()

	// 8) Construct repositories & services
	userRepo := repository.NewUserRepository(dbClient, logger)
	userEvents := kafka.NewUserEvents(bus, cfg.Kafka, logger)

	userService := user.NewService(
		userRepo,
		userCache,
		userEvents, // app/user.Events
		logger,
		user.WithUniqueEmail(cfg.Users.UniqueEmail),
		user.WithCacheTTL(cfg.Redis.TTL),
	)

	// 9) HTTP handlers
	rootHandler := root.NewHandler(cfg.Greeting)
	healthHandler := health.NewHandler(dbClient, redisPinger)
	userHandler := userhandler.NewHandler(userService, logger)

	// 10) HTTP router
	httpRouter := router.NewRouter(
		logger,
		rootHandler,
		healthHandler,
		userHandler,
	)

	// 11) HTTP server
	srv := &http.Server{
		Addr: fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: otelhttp.NewHandler(
			httpRouter,
			cfg.Observability.ServiceName, // span name prefix
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 12) Start concurrent processes (HTTP server, Kafka router)
	errCh := make(chan error, 2)

	go func() {
		logger.Info("http server starting",
			"host", cfg.HTTP.Host,
			"port", cfg.HTTP.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	go func() {
		if !cfg.Kafka.Enabled {
			return
		}
		logger.Info("kafka router starting")
		if err := kafkaRouter.Run(ctx); err != nil {
			errCh <- err
		}
	}()

	// 13) Wait for shutdown signal or an error
	select {
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	case err := <-errCh:
		logger.Error("fatal error from subsystem", "error", err)
		// Cancel context to trigger shutdown of others
		stop()
	}

	// 14) Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown http server", "error", err)
	}

	logger.Info("service stopped")
}

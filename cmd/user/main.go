package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/marketplace/internal/api/http/handlers"
	"github.com/spec-kit/marketplace/internal/auth"
	"github.com/spec-kit/marketplace/internal/config"
	"github.com/spec-kit/marketplace/internal/observability"
	"github.com/spec-kit/marketplace/internal/persistence"
	"github.com/spec-kit/marketplace/internal/repository"
	"github.com/spec-kit/marketplace/internal/service"

	httptransport "github.com/spec-kit/marketplace/internal/api/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	codec, err := auth.NewTokenCodec(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	if err != nil {
		logger.Fatal("invalid jwt secret", zap.Error(err))
	}

	mongo, err := persistence.NewMongo(ctx, cfg.Mongo, logger)
	if err != nil {
		logger.Fatal("failed to connect mongodb", zap.Error(err))
	}
	defer mongo.Close(context.Background())

	userRepo := repository.NewUserRepository(mongo.Collection("users"))
	authService := service.NewAuthService(cfg.Auth, userRepo, codec)

	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterUserRoutes(app, httptransport.UserRoutes{
		Health: handlers.NewHealthHandler("user-service", cfg.App.Version, map[string]handlers.HealthCheck{
			"mongodb": mongo.Ping,
		}),
		Auth: handlers.NewAuthHandler(authService),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

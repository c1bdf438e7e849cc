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
	"github.com/spec-kit/marketplace/internal/messaging"
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

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	producer := messaging.NewProducer(cfg.Kafka, logger)
	defer producer.Close() //nolint:errcheck

	productService := service.NewProductService(service.ProductDependencies{
		ProductRepo: repository.NewProductRepository(mongo.Collection("products")),
		Cache:       repository.NewProductCache(redis.Client, cfg.Redis.CacheTTLDuration()),
		Publisher:   producer,
		Policy:      auth.NewPolicy(),
		Logger:      logger,
	})

	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterProductRoutes(app, httptransport.ProductRoutes{
		Health: handlers.NewHealthHandler("product-service", cfg.App.Version, map[string]handlers.HealthCheck{
			"mongodb": mongo.Ping,
			"redis":   redis.Ping,
		}),
		Products: handlers.NewProductsHandler(productService),
		Resolver: auth.NewResolver(codec),
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

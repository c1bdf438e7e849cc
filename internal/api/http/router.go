package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace/internal/api/http/handlers"
	"github.com/spec-kit/marketplace/internal/auth"
)

// UserRoutes bundles dependencies for the user service routes.
type UserRoutes struct {
	Health *handlers.HealthHandler
	Auth   *handlers.AuthHandler
}

// RegisterUserRoutes wires the user service HTTP surface.
func RegisterUserRoutes(app *fiber.App, cfg UserRoutes) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
}

// ProductRoutes bundles dependencies for the product service routes.
type ProductRoutes struct {
	Health   *handlers.HealthHandler
	Products *handlers.ProductsHandler
	Resolver *auth.Resolver
}

// RegisterProductRoutes wires the product service HTTP surface. Reads are
// public; mutations require a resolved identity.
func RegisterProductRoutes(app *fiber.App, cfg ProductRoutes) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Get("/products", cfg.Products.List)
	app.Get("/products/:id", cfg.Products.Get)

	protected := app.Group("/products", cfg.Resolver.Middleware())
	protected.Post("", cfg.Products.Create)
	protected.Put("/:id", cfg.Products.Update)
	protected.Delete("/:id", cfg.Products.Delete)
}

// MediaRoutes bundles dependencies for the media service routes.
type MediaRoutes struct {
	Health   *handlers.HealthHandler
	Media    *handlers.MediaHandler
	Resolver *auth.Resolver
}

// RegisterMediaRoutes wires the media service HTTP surface. Downloads are
// public; uploads and deletes require a resolved identity.
func RegisterMediaRoutes(app *fiber.App, cfg MediaRoutes) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Get("/media/:id", cfg.Media.Download)

	protected := app.Group("/media", cfg.Resolver.Middleware())
	protected.Post("/upload", cfg.Media.Upload)
	protected.Delete("/:id", cfg.Media.Delete)
}

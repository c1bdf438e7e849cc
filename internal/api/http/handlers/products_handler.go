package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace/internal/api/dto"
	"github.com/spec-kit/marketplace/internal/auth"
	"github.com/spec-kit/marketplace/internal/service"
	apperrors "github.com/spec-kit/marketplace/pkg/util"
)

// ProductsHandler exposes catalog endpoints.
type ProductsHandler struct {
	products *service.ProductService
}

// NewProductsHandler constructs handler.
func NewProductsHandler(productService *service.ProductService) *ProductsHandler {
	return &ProductsHandler{products: productService}
}

// Create handles POST /products.
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	product, err := h.products.Create(c.Context(), identity, service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quality:     req.Quality,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": product})
}

// List handles GET /products.
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	products, err := h.products.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": products})
}

// Get handles GET /products/:id.
func (h *ProductsHandler) Get(c *fiber.Ctx) error {
	product, err := h.products.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": product})
}

// Update handles PUT /products/:id.
func (h *ProductsHandler) Update(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	product, err := h.products.Update(c.Context(), identity, c.Params("id"), service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quality:     req.Quality,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": product})
}

// Delete handles DELETE /products/:id.
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.products.Delete(c.Context(), identity, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

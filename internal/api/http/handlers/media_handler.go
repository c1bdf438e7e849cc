package handlers

import (
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace/internal/api/dto"
	"github.com/spec-kit/marketplace/internal/auth"
	"github.com/spec-kit/marketplace/internal/service"
	apperrors "github.com/spec-kit/marketplace/pkg/util"
)

// MediaHandler exposes upload/download endpoints.
type MediaHandler struct {
	media *service.MediaService
}

// NewMediaHandler constructs handler.
func NewMediaHandler(mediaService *service.MediaService) *MediaHandler {
	return &MediaHandler{media: mediaService}
}

// Upload handles POST /media/upload (multipart form, field "file").
func (h *MediaHandler) Upload(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "file field is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	media, err := h.media.Upload(c.Context(), identity, service.MediaUploadInput{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(fiber.HeaderContentType),
		Data:        data,
		ProductID:   c.FormValue("product_id"),
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewMediaResponse(media)})
}

// Download handles GET /media/:id.
func (h *MediaHandler) Download(c *fiber.Ctx) error {
	media, err := h.media.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, media.ContentType)
	return c.Send(media.Data)
}

// Delete handles DELETE /media/:id.
func (h *MediaHandler) Delete(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.media.Delete(c.Context(), identity, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

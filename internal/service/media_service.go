package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/marketplace/internal/auth"
	"github.com/spec-kit/marketplace/internal/config"
	"github.com/spec-kit/marketplace/internal/domain"
	"github.com/spec-kit/marketplace/internal/repository"
	apperrors "github.com/spec-kit/marketplace/pkg/util"
)

// MediaService coordinates upload/download workflows and the event-driven
// cleanup of media whose owning product was deleted.
type MediaService struct {
	media          repository.MediaRepository
	policy         *auth.Policy
	maxUploadBytes int64
	logger         *zap.Logger
}

// NewMediaService builds the service.
func NewMediaService(cfg config.MediaConfig, media repository.MediaRepository, policy *auth.Policy, logger *zap.Logger) *MediaService {
	return &MediaService{
		media:          media,
		policy:         policy,
		maxUploadBytes: cfg.MaxUploadBytes,
		logger:         logger,
	}
}

// MediaUploadInput describes an upload.
type MediaUploadInput struct {
	Filename    string
	ContentType string
	Data        []byte
	ProductID   string
}

// Upload validates and stores a file owned by the caller.
func (s *MediaService) Upload(ctx context.Context, identity *auth.Identity, input MediaUploadInput) (*domain.Media, error) {
	if err := s.policy.Authorize(identity, auth.ActionCreate, ""); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Filename) == "" {
		return nil, apperrors.NewValidationError("filename is required", nil)
	}
	if len(input.Data) == 0 {
		return nil, apperrors.NewValidationError("uploaded file is empty", nil)
	}
	if int64(len(input.Data)) > s.maxUploadBytes {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("file size %d exceeds the %d byte limit", len(input.Data), s.maxUploadBytes),
			map[string]any{"size": len(input.Data), "limit": s.maxUploadBytes})
	}

	media := &domain.Media{
		Filename:    input.Filename,
		ContentType: input.ContentType,
		Size:        int64(len(input.Data)),
		Data:        input.Data,
		OwnerID:     identity.Principal,
		ProductID:   input.ProductID,
	}
	if err := s.media.Create(ctx, media); err != nil {
		return nil, err
	}
	return media, nil
}

// Get returns a stored file. Downloads are public.
func (s *MediaService) Get(ctx context.Context, id string) (*domain.Media, error) {
	return s.media.GetByID(ctx, id)
}

// Delete removes a file after the ownership check passes.
func (s *MediaService) Delete(ctx context.Context, identity *auth.Identity, id string) error {
	media, err := s.media.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.policy.Authorize(identity, auth.ActionDelete, media.OwnerID); err != nil {
		return err
	}
	return s.media.Delete(ctx, id)
}

// DeleteByProductID removes every media record referencing the product. It
// runs with system-level trust on behalf of the event consumer, bypassing
// per-request authorization. Safe to invoke repeatedly or concurrently for
// the same product id: once the set is empty further calls remove nothing
// and succeed.
func (s *MediaService) DeleteByProductID(ctx context.Context, productID string) error {
	removed, err := s.media.DeleteByProductID(ctx, productID)
	if err != nil {
		return err
	}
	s.logger.Info("removed media for deleted product",
		zap.String("product_id", productID),
		zap.Int64("removed", removed))
	return nil
}

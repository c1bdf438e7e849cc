package dto

import "github.com/spec-kit/marketplace/internal/domain"

// MediaResponse is the metadata returned after upload.
type MediaResponse struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	ProductID   string `json:"product_id,omitempty"`
}

// NewMediaResponse maps the domain model without the raw bytes.
func NewMediaResponse(media *domain.Media) MediaResponse {
	return MediaResponse{
		ID:          media.ID,
		Filename:    media.Filename,
		ContentType: media.ContentType,
		Size:        media.Size,
		ProductID:   media.ProductID,
	}
}

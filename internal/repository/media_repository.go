package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/marketplace/internal/domain"
)

// MediaRepository defines persistence access for uploaded media.
type MediaRepository interface {
	Create(ctx context.Context, media *domain.Media) error
	GetByID(ctx context.Context, id string) (*domain.Media, error)
	Delete(ctx context.Context, id string) error
	// DeleteByProductID removes every media document referencing the
	// product and reports how many were removed. Zero matches is not an
	// error.
	DeleteByProductID(ctx context.Context, productID string) (int64, error)
}

type mediaRepository struct {
	collection *mongo.Collection
}

// NewMediaRepository returns a MongoDB-backed implementation.
func NewMediaRepository(collection *mongo.Collection) MediaRepository {
	return &mediaRepository{collection: collection}
}

func (r *mediaRepository) Create(ctx context.Context, media *domain.Media) error {
	if media.ID == "" {
		media.ID = uuid.NewString()
	}
	media.CreatedAt = time.Now().UTC()

	_, err := r.collection.InsertOne(ctx, media)
	return err
}

func (r *mediaRepository) GetByID(ctx context.Context, id string) (*domain.Media, error) {
	var media domain.Media
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&media); err != nil {
		return nil, err
	}
	return &media, nil
}

func (r *mediaRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mediaRepository) DeleteByProductID(ctx context.Context, productID string) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"product_id": productID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

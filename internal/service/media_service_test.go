package service

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/spec-kit/marketplace/internal/auth"
	"github.com/spec-kit/marketplace/internal/config"
	"github.com/spec-kit/marketplace/internal/domain"
	apperrors "github.com/spec-kit/marketplace/pkg/util"
)

type fakeMediaRepo struct {
	mu    sync.Mutex
	media map[string]*domain.Media
}

func newFakeMediaRepo() *fakeMediaRepo {
	return &fakeMediaRepo{media: make(map[string]*domain.Media)}
}

func (r *fakeMediaRepo) Create(_ context.Context, media *domain.Media) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if media.ID == "" {
		media.ID = uuid.NewString()
	}
	copied := *media
	r.media[media.ID] = &copied
	return nil
}

func (r *fakeMediaRepo) GetByID(_ context.Context, id string) (*domain.Media, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if media, ok := r.media[id]; ok {
		copied := *media
		return &copied, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeMediaRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.media[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.media, id)
	return nil
}

func (r *fakeMediaRepo) DeleteByProductID(_ context.Context, productID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed int64
	for id, media := range r.media {
		if media.ProductID == productID {
			delete(r.media, id)
			removed++
		}
	}
	return removed, nil
}

func (r *fakeMediaRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.media)
}

const testUploadLimit = 2 * 1024 * 1024

func newTestMediaService(t *testing.T) (*MediaService, *fakeMediaRepo) {
	t.Helper()
	repo := newFakeMediaRepo()
	svc := NewMediaService(config.MediaConfig{MaxUploadBytes: testUploadLimit}, repo, auth.NewPolicy(), zap.NewNop())
	return svc, repo
}

func uploadInput(data []byte) MediaUploadInput {
	return MediaUploadInput{
		Filename:    "test-image.jpg",
		ContentType: "image/jpeg",
		Data:        data,
		ProductID:   "prod-123",
	}
}

func TestUploadStoresOwnerAndProduct(t *testing.T) {
	svc, _ := newTestMediaService(t)

	media, err := svc.Upload(context.Background(), sellerIdentity("seller@test.com"), uploadInput([]byte("file content")))
	require.NoError(t, err)
	assert.Equal(t, "seller@test.com", media.OwnerID)
	assert.Equal(t, "prod-123", media.ProductID)
	assert.Equal(t, int64(len("file content")), media.Size)
	assert.NotEmpty(t, media.ID)
}

func TestUploadRejectsEmptyFile(t *testing.T) {
	svc, _ := newTestMediaService(t)

	_, err := svc.Upload(context.Background(), sellerIdentity("seller@test.com"), uploadInput(nil))
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, 400, domainErr.HTTPStatus)
	assert.Contains(t, domainErr.Message, "empty")
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	svc, _ := newTestMediaService(t)

	oversized := bytes.Repeat([]byte("x"), 3*1024*1024)
	_, err := svc.Upload(context.Background(), sellerIdentity("seller@test.com"), uploadInput(oversized))
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, 400, domainErr.HTTPStatus)
	assert.Contains(t, domainErr.Message, "exceeds")
}

func TestUploadRequiresElevatedAuthority(t *testing.T) {
	svc, repo := newTestMediaService(t)

	_, err := svc.Upload(context.Background(), clientIdentity("client@test.com"), uploadInput([]byte("data")))
	require.Error(t, err)
	assert.Equal(t, 403, apperrors.ToDomainError(err).HTTPStatus)
	assert.Zero(t, repo.count())
}

func TestDeleteOwnership(t *testing.T) {
	svc, _ := newTestMediaService(t)
	owner := sellerIdentity("seller@test.com")

	media, err := svc.Upload(context.Background(), owner, uploadInput([]byte("protected")))
	require.NoError(t, err)

	err = svc.Delete(context.Background(), clientIdentity("client@test.com"), media.ID)
	require.Error(t, err)
	assert.Equal(t, 403, apperrors.ToDomainError(err).HTTPStatus)

	require.NoError(t, svc.Delete(context.Background(), owner, media.ID))

	_, err = svc.Get(context.Background(), media.ID)
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
}

func TestDeleteByAdmin(t *testing.T) {
	svc, _ := newTestMediaService(t)

	media, err := svc.Upload(context.Background(), sellerIdentity("seller@test.com"), uploadInput([]byte("data")))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), adminIdentity("admin@test.com"), media.ID))
}

func TestDeleteByProductIDIsIdempotent(t *testing.T) {
	svc, repo := newTestMediaService(t)
	seller := sellerIdentity("seller@test.com")

	for i := 0; i < 3; i++ {
		_, err := svc.Upload(context.Background(), seller, uploadInput([]byte("content")))
		require.NoError(t, err)
	}
	other := uploadInput([]byte("other product"))
	other.ProductID = "prod-999"
	_, err := svc.Upload(context.Background(), seller, other)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteByProductID(context.Background(), "prod-123"))
	assert.Equal(t, 1, repo.count())

	// Re-running for the same product removes nothing and raises no error.
	require.NoError(t, svc.DeleteByProductID(context.Background(), "prod-123"))
	assert.Equal(t, 1, repo.count())
}

func TestDeleteByProductIDWithNothingToDelete(t *testing.T) {
	svc, _ := newTestMediaService(t)

	require.NoError(t, svc.DeleteByProductID(context.Background(), "prod-never-existed"))
}

package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/marketplace/internal/auth"
	"github.com/spec-kit/marketplace/internal/domain"
	"github.com/spec-kit/marketplace/internal/events"
	"github.com/spec-kit/marketplace/internal/repository"
	apperrors "github.com/spec-kit/marketplace/pkg/util"
)

// EventPublisher publishes product lifecycle envelopes to the bus.
type EventPublisher interface {
	PublishProductEvent(ctx context.Context, event events.ProductEvent) error
}

// ProductService coordinates catalog workflows.
type ProductService struct {
	products  repository.ProductRepository
	cache     repository.ProductCache
	publisher EventPublisher
	policy    *auth.Policy
	logger    *zap.Logger
}

// ProductDependencies bundles collaborators for the product service.
type ProductDependencies struct {
	ProductRepo repository.ProductRepository
	Cache       repository.ProductCache
	Publisher   EventPublisher
	Policy      *auth.Policy
	Logger      *zap.Logger
}

// NewProductService builds the service.
func NewProductService(deps ProductDependencies) *ProductService {
	return &ProductService{
		products:  deps.ProductRepo,
		cache:     deps.Cache,
		publisher: deps.Publisher,
		policy:    deps.Policy,
		logger:    deps.Logger,
	}
}

// ProductInput describes create/update payloads.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Quality     int
}

func validateProductInput(input ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return apperrors.NewValidationError("product name is required", nil)
	}
	if input.Price < 0 {
		return apperrors.NewValidationError("price must not be negative", map[string]any{"price": input.Price})
	}
	if input.Quality < 1 || input.Quality > 5 {
		return apperrors.NewValidationError("quality must be between 1 and 5", map[string]any{"quality": input.Quality})
	}
	return nil
}

// Create stores a new listing owned by the caller and announces it on the
// bus. Authorization runs before any store mutation; a rejected request
// leaves no partial side effects.
func (s *ProductService) Create(ctx context.Context, identity *auth.Identity, input ProductInput) (*domain.Product, error) {
	if err := s.policy.Authorize(identity, auth.ActionCreate, ""); err != nil {
		return nil, err
	}
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product := &domain.Product{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Price:       input.Price,
		Quality:     input.Quality,
		OwnerID:     identity.Principal,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewProductEvent(events.ProductCreated, product.ID))
	return product, nil
}

// Get serves single-product reads through the cache. Reads are public.
func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	if cached, err := s.cache.Get(ctx, id); err == nil && cached != nil {
		return cached, nil
	} else if err != nil {
		s.logger.Warn("product cache read failed", zap.Error(err), zap.String("product_id", id))
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, product); err != nil {
		s.logger.Warn("product cache write failed", zap.Error(err), zap.String("product_id", id))
	}
	return product, nil
}

// List returns all listings. Reads are public.
func (s *ProductService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.products.List(ctx)
}

// Update mutates a listing after the ownership check against the recorded
// owner passes.
func (s *ProductService) Update(ctx context.Context, identity *auth.Identity, id string, input ProductInput) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(identity, auth.ActionUpdate, product.OwnerID); err != nil {
		return nil, err
	}
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product.Name = strings.TrimSpace(input.Name)
	product.Description = input.Description
	product.Price = input.Price
	product.Quality = input.Quality
	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	s.publish(ctx, events.NewProductEvent(events.ProductUpdated, id))
	return product, nil
}

// Delete removes a listing and announces the deletion so dependent services
// can clean up their own records.
func (s *ProductService) Delete(ctx context.Context, identity *auth.Identity, id string) error {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.policy.Authorize(identity, auth.ActionDelete, product.OwnerID); err != nil {
		return err
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, id)
	s.publish(ctx, events.NewProductEvent(events.ProductDeleted, id))
	return nil
}

// publish is best-effort: the store is the source of truth, a publish
// failure must not fail the request.
func (s *ProductService) publish(ctx context.Context, event events.ProductEvent) {
	if err := s.publisher.PublishProductEvent(ctx, event); err != nil {
		s.logger.Error("failed to publish product event",
			zap.Error(err),
			zap.String("event_type", string(event.Type)),
			zap.String("product_id", event.ProductID))
	}
}

func (s *ProductService) invalidate(ctx context.Context, id string) {
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn("product cache invalidation failed", zap.Error(err), zap.String("product_id", id))
	}
}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/marketplace/internal/domain"
)

const productCacheKeyPrefix = "product:"

// ProductCache is a read-through cache for single-product lookups.
type ProductCache interface {
	Get(ctx context.Context, id string) (*domain.Product, error)
	Set(ctx context.Context, product *domain.Product) error
	Invalidate(ctx context.Context, id string) error
}

type productCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProductCache returns a Redis-backed implementation.
func NewProductCache(client *redis.Client, ttl time.Duration) ProductCache {
	return &productCache{client: client, ttl: ttl}
}

// Get returns the cached product, or nil on a cache miss.
func (c *productCache) Get(ctx context.Context, id string) (*domain.Product, error) {
	raw, err := c.client.Get(ctx, productCacheKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var product domain.Product
	if err := json.Unmarshal(raw, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *productCache) Set(ctx context.Context, product *domain.Product) error {
	raw, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, productCacheKeyPrefix+product.ID, raw, c.ttl).Err()
}

func (c *productCache) Invalidate(ctx context.Context, id string) error {
	return c.client.Del(ctx, productCacheKeyPrefix+id).Err()
}

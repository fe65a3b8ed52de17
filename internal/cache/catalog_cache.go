package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"shopfront/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	productIDsKey    = "catalog:product_ids"
	productKeyPrefix = "catalog:product:"
)

// ErrMiss is returned when the cache holds no usable catalog.
var ErrMiss = errors.New("catalog cache miss")

// CatalogCache stores the product list in Redis: one JSON value per product
// plus a list of ids that preserves catalog order.
type CatalogCache struct {
	client redis.UniversalClient
	ttl    time.Duration
	logger zerolog.Logger
}

// NewCatalogCache creates a Redis-backed catalog cache.
func NewCatalogCache(client redis.UniversalClient, ttl time.Duration, logger zerolog.Logger) *CatalogCache {
	return &CatalogCache{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("component", "catalog-cache").Logger(),
	}
}

func productKey(id string) string {
	return productKeyPrefix + id
}

// Get returns the cached catalog. Any missing or unreadable product entry
// counts as a miss so callers never serve a partial catalog.
func (c *CatalogCache) Get(ctx context.Context) ([]model.Product, error) {
	ids, err := c.client.LRange(ctx, productIDsKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read product ids from cache: %w", err)
	}
	if len(ids) == 0 {
		return nil, ErrMiss
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = productKey(id)
	}

	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read products from cache: %w", err)
	}

	products := make([]model.Product, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			c.logger.Debug().Str("product_id", ids[i]).Msg("cached product missing or evicted")
			return nil, ErrMiss
		}

		var p model.Product
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			c.logger.Warn().Err(err).Str("product_id", ids[i]).Msg("failed to decode cached product")
			return nil, ErrMiss
		}
		products = append(products, p)
	}

	return products, nil
}

// Set replaces the cached catalog with products.
func (c *CatalogCache) Set(ctx context.Context, products []model.Product) error {
	pipe := c.client.TxPipeline()
	pipe.Del(ctx, productIDsKey)

	ids := make([]interface{}, 0, len(products))
	for _, p := range products {
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to encode product %s: %w", p.ID, err)
		}
		pipe.Set(ctx, productKey(p.ID), data, c.ttl)
		ids = append(ids, p.ID)
	}

	if len(ids) > 0 {
		pipe.RPush(ctx, productIDsKey, ids...)
		if c.ttl > 0 {
			pipe.Expire(ctx, productIDsKey, c.ttl)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Error().Err(err).Msg("failed to populate catalog cache")
		return fmt.Errorf("failed to populate catalog cache: %w", err)
	}

	c.logger.Debug().Int("products", len(products)).Msg("catalog cache populated")
	return nil
}

// Invalidate drops the cached catalog.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, productIDsKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate catalog cache: %w", err)
	}
	return nil
}

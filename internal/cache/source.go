package cache

import (
	"context"
	"errors"

	"shopfront/internal/model"

	"github.com/rs/zerolog"
)

// ProductLister supplies the full product list.
type ProductLister interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
}

// CachedLister reads the catalog from the cache and falls back to the
// wrapped lister, repopulating the cache after a miss.
type CachedLister struct {
	cache  *CatalogCache
	next   ProductLister
	logger zerolog.Logger
}

// NewCachedLister wraps next with cache.
func NewCachedLister(cache *CatalogCache, next ProductLister, logger zerolog.Logger) *CachedLister {
	return &CachedLister{
		cache:  cache,
		next:   next,
		logger: logger.With().Str("component", "cached-lister").Logger(),
	}
}

func (l *CachedLister) ListProducts(ctx context.Context) ([]model.Product, error) {
	products, err := l.cache.Get(ctx)
	if err == nil {
		l.logger.Debug().Int("products", len(products)).Msg("catalog served from cache")
		return products, nil
	}
	if !errors.Is(err, ErrMiss) {
		l.logger.Warn().Err(err).Msg("catalog cache unavailable, falling back to database")
	}

	products, err = l.next.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	if err := l.cache.Set(ctx, products); err != nil {
		l.logger.Warn().Err(err).Msg("failed to repopulate catalog cache")
	}

	return products, nil
}

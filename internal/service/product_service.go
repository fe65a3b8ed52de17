package service

import (
	"context"
	"fmt"

	"shopfront/internal/catalog"
	"shopfront/internal/model"

	"github.com/rs/zerolog"
)

// RatingSource supplies the average rating of every reviewed product.
type RatingSource interface {
	AverageRatings(ctx context.Context) (map[string]float64, error)
}

// productService implements ProductService.
type productService struct {
	store   *catalog.Store
	ratings RatingSource
	logger  zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(store *catalog.Store, ratings RatingSource, logger zerolog.Logger) ProductService {
	return &productService{
		store:   store,
		ratings: ratings,
		logger:  logger.With().Str("service", "product").Logger(),
	}
}

// List runs the filter and sort pipeline over the catalog.
// Ratings are only fetched when the customerRating sort needs them.
func (s *productService) List(ctx context.Context, q catalog.Query) ([]model.Product, error) {
	if err := s.store.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	var ratings map[string]float64
	if q.Sort == catalog.SortCustomerRating {
		var err error
		ratings, err = s.ratings.AverageRatings(ctx)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to get average ratings")
			return nil, fmt.Errorf("failed to get ratings: %w", err)
		}
	}

	products, err := catalog.Apply(s.store.Products(), q, ratings)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("category", q.Category).
		Str("search", q.Search).
		Str("sort", string(q.Sort)).
		Int("count", len(products)).
		Msg("listed products")

	return products, nil
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	if id == "" {
		s.logger.Warn().Msg("product ID is empty")
		return nil, model.ErrProductNotFound
	}

	if err := s.store.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	product, ok := s.store.ByID(id)
	if !ok {
		s.logger.Debug().Str("product_id", id).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	return &product, nil
}

func (s *productService) Categories(ctx context.Context) ([]string, error) {
	if err := s.store.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return s.store.Categories(), nil
}

func (s *productService) PriceRanges() []catalog.PriceBucket {
	return catalog.PriceBuckets()
}

func (s *productService) Refresh(ctx context.Context) error {
	return s.store.Refresh(ctx)
}

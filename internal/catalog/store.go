package catalog

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"shopfront/internal/model"

	"github.com/rs/zerolog"
)

// Source supplies the full product list.
type Source interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
}

// Store holds the product list fetched from a Source. It loads once and
// serves every later read from memory until Refresh is called.
type Store struct {
	source Source
	logger zerolog.Logger

	mu       sync.RWMutex
	loaded   bool
	products []model.Product
	byID     map[string]int
}

// NewStore creates a catalog store backed by source.
func NewStore(source Source, logger zerolog.Logger) *Store {
	return &Store{
		source: source,
		logger: logger.With().Str("component", "catalog").Logger(),
		byID:   make(map[string]int),
	}
}

// Load fetches the catalog if it has not been fetched yet.
func (s *Store) Load(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}
	return s.Refresh(ctx)
}

// Refresh replaces the catalog with a fresh fetch from the source.
// On failure the current catalog is kept.
func (s *Store) Refresh(ctx context.Context) error {
	products, err := s.source.ListProducts(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load catalog")
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	byID := make(map[string]int, len(products))
	for i, p := range products {
		byID[p.ID] = i
	}

	s.mu.Lock()
	s.products = products
	s.byID = byID
	s.loaded = true
	s.mu.Unlock()

	s.logger.Info().Int("products", len(products)).Msg("catalog loaded")
	return nil
}

// Products returns a copy of the catalog in source order.
func (s *Store) Products() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Product, len(s.products))
	copy(out, s.products)
	return out
}

// ByID returns the product with id.
func (s *Store) ByID(id string) (model.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return model.Product{}, false
	}
	return s.products[i], true
}

// Categories returns "All" followed by the distinct product categories in alphabetical order.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	var categories []string
	for _, p := range s.products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		categories = append(categories, p.Category)
	}
	sort.Strings(categories)

	return append([]string{AllCategories}, categories...)
}

// Filter applies the category and search filters to the catalog.
func (s *Store) Filter(category, search string) []model.Product {
	return FilterBySearch(FilterByCategory(s.Products(), category), search)
}

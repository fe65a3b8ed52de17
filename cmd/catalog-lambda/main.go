package main

import (
	"context"
	"fmt"
	"os"

	"shopfront/internal/cache"
	"shopfront/internal/catalog"
	"shopfront/internal/config"
	"shopfront/internal/database"
	"shopfront/internal/repository"
	"shopfront/internal/service"

	"github.com/aws/aws-lambda-go/lambda"
)

func main() {
	h, err := setup(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	lambda.Start(h.Handle)
}

// setup builds the read-only catalog path once per container. The pool and
// Redis client stay open for the lifetime of the container.
func setup(ctx context.Context) (*catalogHandler, error) {
	cfg, err := config.LoadStore()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	productRepo := repository.NewProductRepository(pool, logger)
	reviewRepo := repository.NewReviewRepository(pool, logger)

	var source catalog.Source = productRepo
	if cfg.Cache.Enabled {
		client, err := database.NewRedisClient(ctx, cfg.Redis, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, reading the catalog from the database")
		} else {
			source = cache.NewCachedLister(cache.NewCatalogCache(client, cfg.Cache.TTL, logger), productRepo, logger)
		}
	}

	products := service.NewProductService(catalog.NewStore(source, logger), reviewRepo, logger)

	return newCatalogHandler(products, logger), nil
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"shopfront/internal/cache"
	"shopfront/internal/config"
	"shopfront/internal/coupon"
	"shopfront/internal/database"
	"shopfront/internal/repository"
)

// seed loads the sample catalog into the database and writes the sample
// coupon table file the API reads through COUPONS_FILE. With S3 enabled the
// table is also uploaded under S3_PREFIX.
func main() {
	couponFile := flag.String("coupons", "data/coupons/coupons.yaml.gz", "path of the coupon table file to write; empty skips it")
	skipProducts := flag.Bool("skip-products", false, "do not touch the product catalog")
	flag.Parse()

	if err := run(*couponFile, *skipProducts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(couponFile string, skipProducts bool) error {
	cfg, err := config.LoadStore()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	ctx := context.Background()

	if couponFile != "" {
		table := coupon.DefaultTable()
		if err := coupon.WriteFile(couponFile, table); err != nil {
			return fmt.Errorf("failed to write coupon table: %w", err)
		}
		logger.Info().Str("file", couponFile).Int("coupons", table.Size()).Msg("coupon table written")

		if cfg.S3.Enabled {
			store, err := coupon.NewS3Store(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
			if err != nil {
				return fmt.Errorf("failed to initialise S3 coupon store: %w", err)
			}
			if err := store.Publish(ctx, cfg.S3.Prefix+couponFile, table); err != nil {
				return fmt.Errorf("failed to publish coupon table: %w", err)
			}
		}
	}

	if skipProducts {
		return nil
	}

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	products := sampleProducts()
	if err := repository.NewProductRepository(pool, logger).Upsert(ctx, products); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}
	logger.Info().Int("products", len(products)).Msg("catalog seeded")

	if cfg.Cache.Enabled {
		client, err := database.NewRedisClient(ctx, cfg.Redis, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize redis: %w", err)
		}
		defer client.Close()

		if err := cache.NewCatalogCache(client, cfg.Cache.TTL, logger).Invalidate(ctx); err != nil {
			return fmt.Errorf("failed to invalidate catalog cache: %w", err)
		}
		logger.Info().Msg("catalog cache invalidated")
	}

	return nil
}

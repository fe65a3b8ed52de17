package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopfront/internal/cache"
	"shopfront/internal/catalog"
	"shopfront/internal/config"
	"shopfront/internal/coupon"
	"shopfront/internal/database"
	"shopfront/internal/handler"
	"shopfront/internal/payment"
	"shopfront/internal/repository"
	"shopfront/internal/router"
	"shopfront/internal/service"
	"shopfront/internal/session"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting shopfront API server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = database.NewRedisClient(ctx, cfg.Redis, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize redis: %w", err)
		}
		defer redisClient.Close()
	}

	// Repositories
	productRepo := repository.NewProductRepository(pool, logger)
	reviewRepo := repository.NewReviewRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)

	var source catalog.Source = productRepo
	if cfg.Cache.Enabled {
		catalogCache := cache.NewCatalogCache(redisClient, cfg.Cache.TTL, logger)
		source = cache.NewCachedLister(catalogCache, productRepo, logger)
		logger.Info().Dur("ttl", cfg.Cache.TTL).Msg("catalog cache enabled")
	}
	store := catalog.NewStore(source, logger)
	if err := store.Load(ctx); err != nil {
		// The store retries on the next request.
		logger.Warn().Err(err).Msg("failed to preload catalog")
	}

	sessions := newSessionStore(cfg, redisClient, logger)

	coupons, err := loadCoupons(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to load coupons: %w", err)
	}

	gateway := payment.NewStripeGateway(cfg.Payment.StripeSecretKey, cfg.Payment.StripePublishableKey, logger)

	// Services
	productService := service.NewProductService(store, reviewRepo, logger)
	shoppingService := service.NewShoppingService(sessions, productService, coupons, logger)
	reviewService := service.NewReviewService(reviewRepo, logger)
	checkoutService := service.NewCheckoutService(orderRepo, sessions, gateway, cfg.Payment.Currency, logger)

	go refreshCatalog(ctx, productService, cfg.Cache.TTL, logger)

	mux := router.New(router.Handlers{
		Product:  handler.NewProductHandler(productService, logger),
		Cart:     handler.NewCartHandler(shoppingService, logger),
		Wishlist: handler.NewWishlistHandler(shoppingService, logger),
		Review:   handler.NewReviewHandler(reviewService, logger),
		Payment:  handler.NewPaymentHandler(checkoutService, logger),
	}, cfg.Auth.APIKey, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// refreshCatalog reloads the in-memory catalog every interval until ctx is done.
func refreshCatalog(ctx context.Context, products service.ProductService, interval time.Duration, logger zerolog.Logger) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := products.Refresh(ctx); err != nil {
				logger.Warn().Err(err).Msg("failed to refresh catalog")
			}
		}
	}
}

func newSessionStore(cfg *config.Config, client *redis.Client, logger zerolog.Logger) session.Store {
	if cfg.Session.Backend == config.SessionBackendRedis {
		logger.Info().Dur("ttl", cfg.Session.TTL).Msg("using redis session store")
		return session.NewRedisStore(client, cfg.Session.TTL, logger)
	}

	logger.Info().Dur("ttl", cfg.Session.TTL).Msg("using in-memory session store")
	return session.NewMemoryStore(cfg.Session.TTL)
}

// loadCoupons reads the coupon table from S3 when enabled, falling back to the local file.
func loadCoupons(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*coupon.Table, error) {
	fileLoader := coupon.NewFileLoader(logger)

	var s3Loader coupon.Loader
	if cfg.S3.Enabled {
		l, err := coupon.NewS3Store(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			s3Loader = l
		}
	} else {
		logger.Info().Msg("using local file system for coupon files (S3 disabled)")
	}

	loader := coupon.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, cfg.S3.Enabled, logger)

	table, err := coupon.LoadTable(ctx, loader, cfg.Coupons.FilePath, logger)
	if err != nil {
		return nil, err
	}

	logger.Info().Int("coupons", table.Size()).Msg("coupon table loaded")
	return table, nil
}

package integration

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"shopfront/internal/catalog"
	"shopfront/internal/coupon"
	"shopfront/internal/database"
	"shopfront/internal/handler"
	"shopfront/internal/model"
	"shopfront/internal/payment"
	"shopfront/internal/repository"
	"shopfront/internal/router"
	"shopfront/internal/service"
	"shopfront/internal/session"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const testAPIKey = "test-api-key"

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
}

// SetupTestDB creates a PostgreSQL test container with the application schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := database.Migrate(ctx, pool, zerolog.Nop()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
	}
}

// SeedProducts inserts the test catalog.
func SeedProducts(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	products := []model.Product{
		{ID: "P001", Name: "Smartphone X", Description: "50MP camera", Price: 7999, Category: "Electronics", CountInStock: 12},
		{ID: "P002", Name: "Cotton Shirt", Description: "Regular fit", Price: 599, Category: "Clothing", CountInStock: 40},
		{ID: "P003", Name: "Desk Lamp", Description: "Adjustable LED lamp", Price: 899, Category: "Home", CountInStock: 22},
	}

	repo := repository.NewProductRepository(pool, zerolog.Nop())
	if err := repo.Upsert(context.Background(), products); err != nil {
		t.Fatalf("failed to seed products: %v", err)
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	tables := []string{"order_items", "orders", "reviews", "products"}
	for _, table := range tables {
		if _, err := pool.Exec(context.Background(), fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}

// fakeGateway stands in for the payment processor. Intents start out
// awaiting a payment method until settle is called.
type fakeGateway struct {
	mu      sync.Mutex
	next    int
	intents map[string]*payment.Intent
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{intents: make(map[string]*payment.Intent)}
}

func (g *fakeGateway) CreateIntent(ctx context.Context, params payment.IntentParams) (*payment.Intent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.next++
	id := fmt.Sprintf("pi_test_%d", g.next)
	intent := &payment.Intent{
		ID:           id,
		ClientSecret: id + "_secret",
		Status:       payment.StatusRequiresPaymentMethod,
		Amount:       payment.ToMinorUnits(params.Amount),
		Currency:     params.Currency,
	}
	g.intents[id] = intent

	out := *intent
	return &out, nil
}

func (g *fakeGateway) GetIntent(ctx context.Context, id string) (*payment.Intent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	intent, ok := g.intents[id]
	if !ok {
		return nil, &payment.RemoteError{Message: "No such payment_intent: " + id}
	}

	out := *intent
	return &out, nil
}

func (g *fakeGateway) PublishableKey() string {
	return "pk_test"
}

func (g *fakeGateway) settle(id string, status payment.IntentStatus) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.intents[id].Status = status
}

// setupTestServer wires the full application over the test database.
func setupTestServer(t *testing.T, testDB *TestDB, gateway payment.Gateway) http.Handler {
	t.Helper()

	logger := zerolog.Nop()

	productRepo := repository.NewProductRepository(testDB.Pool, logger)
	reviewRepo := repository.NewReviewRepository(testDB.Pool, logger)
	orderRepo := repository.NewOrderRepository(testDB.Pool, logger)

	sessions := session.NewMemoryStore(time.Hour)

	productService := service.NewProductService(catalog.NewStore(productRepo, logger), reviewRepo, logger)
	shoppingService := service.NewShoppingService(sessions, productService, coupon.DefaultTable(), logger)
	reviewService := service.NewReviewService(reviewRepo, logger)
	checkoutService := service.NewCheckoutService(orderRepo, sessions, gateway, "inr", logger)

	return router.New(router.Handlers{
		Product:  handler.NewProductHandler(productService, logger),
		Cart:     handler.NewCartHandler(shoppingService, logger),
		Wishlist: handler.NewWishlistHandler(shoppingService, logger),
		Review:   handler.NewReviewHandler(reviewService, logger),
		Payment:  handler.NewPaymentHandler(checkoutService, logger),
	}, testAPIKey, logger)
}

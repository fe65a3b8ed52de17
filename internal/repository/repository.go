package repository

import (
	"context"
	"errors"

	"shopfront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes the repositories translate into domain errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// ListProducts retrieves the whole catalogue in catalogue order.
	ListProducts(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a single product by its ID. It returns nil when no product matches.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// GetByIDs retrieves multiple products by their IDs.
	GetByIDs(ctx context.Context, ids []string) ([]model.Product, error)

	// Upsert inserts products or overwrites existing ones with the same ID.
	Upsert(ctx context.Context, products []model.Product) error
}

// ReviewRepository defines the interface for review data access operations.
type ReviewRepository interface {
	// ListByProduct retrieves the reviews of a product, newest first.
	ListByProduct(ctx context.Context, productID string) ([]model.Review, error)

	// GetByID retrieves a review. It returns nil when no review matches.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Review, error)

	// Create inserts a review. A second review by the same user for the same
	// product fails with model.ErrDuplicateReview.
	Create(ctx context.Context, review *model.Review) error

	// Update overwrites the rating, title and comment of a review.
	Update(ctx context.Context, review *model.Review) error

	// Delete removes a review.
	Delete(ctx context.Context, id uuid.UUID) error

	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// GetForUpdate reads a review and locks its row until tx ends.
	GetForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Review, error)

	// SetHelpfulVoters replaces the helpful voter list within tx.
	SetHelpfulVoters(ctx context.Context, tx pgx.Tx, id uuid.UUID, voters []string) error

	// AverageRatings returns the mean rating of every reviewed product.
	AverageRatings(ctx context.Context) (map[string]float64, error)
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByOrderID retrieves an order by its payment order id along with its items.
	// It returns nil when no order matches.
	GetByOrderID(ctx context.Context, orderID string) (*model.Order, error)

	// UpdateStatus sets the status and payment id of an order.
	// It fails with model.ErrOrderNotFound when no order matches.
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus, paymentID *string) error
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

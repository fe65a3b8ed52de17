package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopfront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// CreateOrder inserts a new order within the provided transaction.
func (r *orderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (
			id, order_id, payment_id, user_id, user_name, user_email,
			total_amount, currency, coupon_code, shipping_address, status, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7::numeric, $8, $9, $10, $11, $12, $13)
	`

	_, err := tx.Exec(ctx, query,
		order.ID,
		order.OrderID,
		order.PaymentID,
		order.UserID,
		order.UserName,
		order.UserEmail,
		order.TotalAmount.StringFixed(2),
		order.Currency,
		order.CouponCode,
		order.ShippingAddress,
		string(order.Status),
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.OrderID).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.OrderID).
		Msg("order created successfully")

	return nil
}

// CreateOrderItems inserts multiple order items within the provided transaction.
func (r *orderRepository) CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_items (id, order_id, product_id, name, price, quantity, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(query, item.ID, item.OrderID, item.ProductID, item.Name, item.Price, item.Quantity, item.ImageURL)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(items); i++ {
		if _, err := results.Exec(); err != nil {
			r.logger.Error().
				Err(err).
				Str("order_id", items[i].OrderID.String()).
				Str("product_id", items[i].ProductID).
				Msg("failed to create order item")
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	r.logger.Debug().
		Int("count", len(items)).
		Msg("order items created successfully")

	return nil
}

// GetByOrderID retrieves an order by its payment order id along with its items.
func (r *orderRepository) GetByOrderID(ctx context.Context, orderID string) (*model.Order, error) {
	orderQuery := `
		SELECT id, order_id, payment_id, user_id, user_name, user_email,
			total_amount::text, currency, coupon_code, shipping_address, status, created_at, updated_at
		FROM orders
		WHERE order_id = $1
	`

	var (
		order  model.Order
		amount string
		status string
	)
	err := r.pool.QueryRow(ctx, orderQuery, orderID).Scan(
		&order.ID,
		&order.OrderID,
		&order.PaymentID,
		&order.UserID,
		&order.UserName,
		&order.UserEmail,
		&amount,
		&order.Currency,
		&order.CouponCode,
		&order.ShippingAddress,
		&status,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("order_id", orderID).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", orderID).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	order.Status = model.OrderStatus(status)
	if order.TotalAmount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("failed to parse order total %q: %w", amount, err)
	}

	itemsQuery := `
		SELECT id, order_id, product_id, name, price, quantity, image_url
		FROM order_items
		WHERE order_id = $1
		ORDER BY name, id
	`

	rows, err := r.pool.Query(ctx, itemsQuery, order.ID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", orderID).
			Msg("failed to query order items")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	order.Items = []model.OrderItem{}
	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Name, &item.Price, &item.Quantity, &item.ImageURL); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order item row")
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		order.Items = append(order.Items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order item rows")
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return &order, nil
}

// UpdateStatus sets the status and payment id of an order.
func (r *orderRepository) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus, paymentID *string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE orders
		SET status = $2, payment_id = COALESCE($3, payment_id), updated_at = $4
		WHERE order_id = $1
	`, orderID, string(status), paymentID, time.Now())
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", orderID).Msg("failed to update order status")
		return fmt.Errorf("failed to update order status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}

	r.logger.Info().Str("order_id", orderID).Str("status", string(status)).Msg("order status updated")
	return nil
}

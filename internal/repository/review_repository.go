package repository

import (
	"context"
	"errors"
	"fmt"

	"shopfront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// helpful is derived from the voter array so the two can never disagree.
const reviewColumns = `id, product_id, user_id, user_name, user_email, rating, title, comment,
	verified, helpful_by, cardinality(helpful_by), created_at`

// reviewRepository implements the ReviewRepository interface using PostgreSQL.
type reviewRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool *pgxpool.Pool, logger zerolog.Logger) ReviewRepository {
	return &reviewRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "review").Logger(),
	}
}

func scanReview(row pgx.Row) (model.Review, error) {
	var rv model.Review
	err := row.Scan(
		&rv.ID,
		&rv.ProductID,
		&rv.UserID,
		&rv.UserName,
		&rv.UserEmail,
		&rv.Rating,
		&rv.Title,
		&rv.Comment,
		&rv.Verified,
		&rv.HelpfulBy,
		&rv.Helpful,
		&rv.CreatedAt,
	)
	if rv.HelpfulBy == nil {
		rv.HelpfulBy = []string{}
	}
	return rv, err
}

// ListByProduct retrieves the reviews of a product, newest first.
func (r *reviewRepository) ListByProduct(ctx context.Context, productID string) ([]model.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC, id
	`

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID).Msg("failed to query reviews")
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []model.Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan review row")
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating review rows")
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, nil
}

// GetByID retrieves a review.
func (r *reviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	return r.getOne(ctx, r.pool, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id)
}

// GetForUpdate reads a review and locks its row until tx ends.
func (r *reviewRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Review, error) {
	return r.getOne(ctx, tx, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1 FOR UPDATE`, id)
}

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *reviewRepository) getOne(ctx context.Context, q rowQuerier, query string, id uuid.UUID) (*model.Review, error) {
	rv, err := scanReview(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("review_id", id.String()).Msg("review not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("review_id", id.String()).Msg("failed to query review")
		return nil, fmt.Errorf("failed to query review: %w", err)
	}
	return &rv, nil
}

// Create inserts a review.
func (r *reviewRepository) Create(ctx context.Context, rv *model.Review) error {
	query := `
		INSERT INTO reviews (id, product_id, user_id, user_name, user_email, rating, title, comment, verified, helpful_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	voters := rv.HelpfulBy
	if voters == nil {
		voters = []string{}
	}

	_, err := r.pool.Exec(ctx, query,
		rv.ID, rv.ProductID, rv.UserID, rv.UserName, rv.UserEmail,
		rv.Rating, rv.Title, rv.Comment, rv.Verified, voters, rv.CreatedAt,
	)
	if err != nil {
		switch pgErrorCode(err) {
		case pgUniqueViolation:
			r.logger.Debug().
				Str("product_id", rv.ProductID).
				Str("user_id", rv.UserID).
				Msg("duplicate review rejected")
			return model.ErrDuplicateReview
		case pgForeignKeyViolation:
			return model.ErrProductNotFound
		}
		r.logger.Error().Err(err).Str("review_id", rv.ID.String()).Msg("failed to create review")
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

// Update overwrites the rating, title and comment of a review.
func (r *reviewRepository) Update(ctx context.Context, rv *model.Review) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE reviews SET rating = $2, title = $3, comment = $4
		WHERE id = $1
	`, rv.ID, rv.Rating, rv.Title, rv.Comment)
	if err != nil {
		r.logger.Error().Err(err).Str("review_id", rv.ID.String()).Msg("failed to update review")
		return fmt.Errorf("failed to update review: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrReviewNotFound
	}
	return nil
}

// Delete removes a review.
func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("review_id", id.String()).Msg("failed to delete review")
		return fmt.Errorf("failed to delete review: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrReviewNotFound
	}
	return nil
}

// BeginTx starts a new database transaction.
func (r *reviewRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// SetHelpfulVoters replaces the helpful voter list within tx.
func (r *reviewRepository) SetHelpfulVoters(ctx context.Context, tx pgx.Tx, id uuid.UUID, voters []string) error {
	if voters == nil {
		voters = []string{}
	}

	if _, err := tx.Exec(ctx, `UPDATE reviews SET helpful_by = $2 WHERE id = $1`, id, voters); err != nil {
		r.logger.Error().Err(err).Str("review_id", id.String()).Msg("failed to update helpful voters")
		return fmt.Errorf("failed to update helpful voters: %w", err)
	}
	return nil
}

// AverageRatings returns the mean rating of every reviewed product.
func (r *reviewRepository) AverageRatings(ctx context.Context) (map[string]float64, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT product_id, AVG(rating)::float8
		FROM reviews
		GROUP BY product_id
	`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query average ratings")
		return nil, fmt.Errorf("failed to query average ratings: %w", err)
	}
	defer rows.Close()

	averages := make(map[string]float64)
	for rows.Next() {
		var productID string
		var avg float64
		if err := rows.Scan(&productID, &avg); err != nil {
			return nil, fmt.Errorf("failed to scan average rating: %w", err)
		}
		averages[productID] = avg
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating average ratings: %w", err)
	}

	return averages, nil
}

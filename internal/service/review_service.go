package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shopfront/internal/model"
	"shopfront/internal/repository"
	"shopfront/internal/review"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// reviewService implements ReviewService.
type reviewService struct {
	reviewRepo repository.ReviewRepository
	logger     zerolog.Logger
	now        func() time.Time
}

// NewReviewService creates a new review service.
func NewReviewService(reviewRepo repository.ReviewRepository, logger zerolog.Logger) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		logger:     logger.With().Str("service", "review").Logger(),
		now:        time.Now,
	}
}

// ListByProduct returns the reviews of a product, sorted for display, with
// the rating summary computed over all of them.
func (s *reviewService) ListByProduct(ctx context.Context, productID string, sortKey review.SortKey) (*model.ReviewListResponse, error) {
	reviews, err := s.reviewRepo.ListByProduct(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", productID).Msg("failed to list reviews")
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}

	summary := review.Aggregate(reviews)

	return &model.ReviewListResponse{
		Reviews:      review.Sort(reviews, sortKey),
		TotalReviews: summary.TotalReviews,
		AvgRating:    summary.AvgRating,
		RatingCounts: summary.RatingCounts,
	}, nil
}

// Create submits a new review. Reviews start unverified with no helpful votes.
func (s *reviewService) Create(ctx context.Context, req *model.ReviewRequest) (*model.Review, error) {
	if req == nil {
		return nil, fmt.Errorf("review request is nil")
	}

	if err := review.ValidateSubmission(req); err != nil {
		s.logger.Warn().Err(err).Str("product_id", req.ProductID).Msg("invalid review")
		return nil, err
	}

	r := &model.Review{
		ID:        uuid.New(),
		ProductID: req.ProductID,
		UserID:    req.UserID,
		UserName:  strings.TrimSpace(req.UserName),
		UserEmail: strings.TrimSpace(req.UserEmail),
		Rating:    req.Rating,
		Title:     strings.TrimSpace(req.Title),
		Comment:   strings.TrimSpace(req.Comment),
		HelpfulBy: []string{},
		CreatedAt: s.now(),
	}

	if err := s.reviewRepo.Create(ctx, r); err != nil {
		if isDomainError(err) {
			s.logger.Debug().Err(err).Str("product_id", r.ProductID).Str("user_id", r.UserID).Msg("review rejected")
			return nil, err
		}
		s.logger.Error().Err(err).Str("product_id", r.ProductID).Msg("failed to create review")
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	s.logger.Info().
		Str("review_id", r.ID.String()).
		Str("product_id", r.ProductID).
		Int("rating", r.Rating).
		Msg("review created")

	return r, nil
}

// ToggleHelpful flips userID's vote under a row lock so concurrent toggles
// on the same review cannot lose votes.
func (s *reviewService) ToggleHelpful(ctx context.Context, id uuid.UUID, userID string) (_ *model.Review, err error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "userId is required")
	}

	tx, err := s.reviewRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to toggle helpful: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	r, err := s.reviewRepo.GetForUpdate(ctx, tx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("review_id", id.String()).Msg("failed to lock review")
		return nil, fmt.Errorf("failed to toggle helpful: %w", err)
	}
	if r == nil {
		err = model.ErrReviewNotFound
		return nil, err
	}

	voted := review.ToggleHelpful(r, userID)

	if err = s.reviewRepo.SetHelpfulVoters(ctx, tx, id, r.HelpfulBy); err != nil {
		s.logger.Error().Err(err).Str("review_id", id.String()).Msg("failed to save helpful votes")
		return nil, fmt.Errorf("failed to toggle helpful: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("review_id", id.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to toggle helpful: %w", err)
	}

	s.logger.Debug().
		Str("review_id", id.String()).
		Str("user_id", userID).
		Bool("voted", voted).
		Int("helpful", r.Helpful).
		Msg("helpful vote toggled")

	return r, nil
}

func (s *reviewService) Update(ctx context.Context, id uuid.UUID, req *model.ReviewUpdateRequest) (*model.Review, error) {
	if req == nil {
		return nil, fmt.Errorf("review request is nil")
	}

	if err := review.ValidateUpdate(req); err != nil {
		return nil, err
	}

	r, err := s.owned(ctx, id, req.UserID)
	if err != nil {
		return nil, err
	}

	r.Rating = req.Rating
	r.Title = strings.TrimSpace(req.Title)
	r.Comment = strings.TrimSpace(req.Comment)

	if err := s.reviewRepo.Update(ctx, r); err != nil {
		if isDomainError(err) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("review_id", id.String()).Msg("failed to update review")
		return nil, fmt.Errorf("failed to update review: %w", err)
	}

	return r, nil
}

func (s *reviewService) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "userId is required")
	}

	if _, err := s.owned(ctx, id, userID); err != nil {
		return err
	}

	if err := s.reviewRepo.Delete(ctx, id); err != nil {
		if isDomainError(err) {
			return err
		}
		s.logger.Error().Err(err).Str("review_id", id.String()).Msg("failed to delete review")
		return fmt.Errorf("failed to delete review: %w", err)
	}

	s.logger.Info().Str("review_id", id.String()).Msg("review deleted")
	return nil
}

// owned loads a review and checks it belongs to userID.
func (s *reviewService) owned(ctx context.Context, id uuid.UUID, userID string) (*model.Review, error) {
	r, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("review_id", id.String()).Msg("failed to get review")
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	if r == nil {
		return nil, model.ErrReviewNotFound
	}
	if r.UserID != strings.TrimSpace(userID) {
		s.logger.Warn().
			Str("review_id", id.String()).
			Str("user_id", userID).
			Msg("review owned by another user")
		return nil, model.ErrNotReviewOwner
	}
	return r, nil
}

func isDomainError(err error) bool {
	var domainErr *model.DomainError
	return errors.As(err, &domainErr)
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// Review is a shopper's rating and comment on a product.
// Helpful always equals len(HelpfulBy); it is derived from the voter list and never stored on its own.
type Review struct {
	ID        uuid.UUID `json:"_id" db:"id"`
	ProductID string    `json:"productId" db:"product_id"`
	UserID    string    `json:"userId" db:"user_id"`
	UserName  string    `json:"userName" db:"user_name"`
	UserEmail string    `json:"userEmail" db:"user_email"`
	Rating    int       `json:"rating" db:"rating"`
	Title     string    `json:"title" db:"title"`
	Comment   string    `json:"comment" db:"comment"`
	Verified  bool      `json:"verified" db:"verified"`
	Helpful   int       `json:"helpful" db:"-"`
	HelpfulBy []string  `json:"helpfulBy" db:"helpful_by"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// ReviewRequest is the payload for submitting a new review.
type ReviewRequest struct {
	ProductID string `json:"productId"`
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
	Rating    int    `json:"rating"`
	Title     string `json:"title"`
	Comment   string `json:"comment"`
}

// ReviewUpdateRequest is the payload for editing an existing review.
type ReviewUpdateRequest struct {
	UserID  string `json:"userId"`
	Rating  int    `json:"rating"`
	Title   string `json:"title"`
	Comment string `json:"comment"`
}

// ReviewVoterRequest identifies the user toggling a helpful vote or deleting a review.
type ReviewVoterRequest struct {
	UserID string `json:"userId"`
}

// ReviewListResponse is returned when listing the reviews of a product.
type ReviewListResponse struct {
	Reviews      []Review    `json:"reviews"`
	TotalReviews int         `json:"totalReviews"`
	AvgRating    float64     `json:"avgRating"`
	RatingCounts map[int]int `json:"ratingCounts"`
}

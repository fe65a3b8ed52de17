package review

import (
	"strings"
	"unicode/utf8"

	"shopfront/internal/model"
)

const (
	// DefaultTitle is used when a review is submitted without a title.
	DefaultTitle = "No title"

	MaxTitleLength   = 100
	MaxCommentLength = 1000
)

var (
	ErrTitleTooLong   = model.NewDomainError(model.ErrCodeTitleTooLong, "Title cannot exceed 100 characters")
	ErrCommentTooLong = model.NewDomainError(model.ErrCodeCommentTooLong, "Review cannot exceed 1000 characters")
)

// ValidateSubmission checks a new review and fills in the default title.
func ValidateSubmission(req *model.ReviewRequest) error {
	req.ProductID = strings.TrimSpace(req.ProductID)
	req.UserID = strings.TrimSpace(req.UserID)

	switch {
	case req.ProductID == "":
		return missingField("productId")
	case req.UserID == "":
		return missingField("userId")
	case strings.TrimSpace(req.UserName) == "":
		return missingField("userName")
	case strings.TrimSpace(req.UserEmail) == "":
		return missingField("userEmail")
	}

	if strings.TrimSpace(req.Title) == "" {
		req.Title = DefaultTitle
	}

	return validateContent(req.Rating, req.Title, req.Comment)
}

// ValidateUpdate checks an edit to an existing review.
func ValidateUpdate(req *model.ReviewUpdateRequest) error {
	if strings.TrimSpace(req.UserID) == "" {
		return missingField("userId")
	}

	if strings.TrimSpace(req.Title) == "" {
		req.Title = DefaultTitle
	}

	return validateContent(req.Rating, req.Title, req.Comment)
}

func validateContent(rating int, title, comment string) error {
	if rating < 1 || rating > 5 {
		return model.ErrInvalidRating
	}

	if strings.TrimSpace(comment) == "" {
		return model.ErrEmptyComment
	}

	if utf8.RuneCountInString(title) > MaxTitleLength {
		return ErrTitleTooLong
	}

	if utf8.RuneCountInString(comment) > MaxCommentLength {
		return ErrCommentTooLong
	}

	return nil
}

func missingField(name string) error {
	return model.NewDomainError(model.ErrCodeMissingField, name+" is required")
}

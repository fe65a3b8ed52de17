package model

import "errors"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON       = "INVALID_JSON"
	ErrCodeMissingField      = "MISSING_FIELD"
	ErrCodeMissingSession    = "MISSING_SESSION"
	ErrCodeProductNotFound   = "PRODUCT_NOT_FOUND"
	ErrCodeReviewNotFound    = "REVIEW_NOT_FOUND"
	ErrCodeOrderNotFound     = "ORDER_NOT_FOUND"
	ErrCodeDuplicateReview   = "DUPLICATE_REVIEW"
	ErrCodeInvalidRating     = "INVALID_RATING"
	ErrCodeEmptyComment      = "EMPTY_COMMENT"
	ErrCodeTitleTooLong      = "TITLE_TOO_LONG"
	ErrCodeCommentTooLong    = "COMMENT_TOO_LONG"
	ErrCodeInvalidPriceRange = "INVALID_PRICE_RANGE"
	ErrCodeInvalidSort       = "INVALID_SORT"
	ErrCodeEmptyCart         = "EMPTY_CART"
	ErrCodeCouponIneligible  = "COUPON_INELIGIBLE"
	ErrCodeInvalidAmount     = "INVALID_AMOUNT"
	ErrCodeNotInWishlist     = "NOT_IN_WISHLIST"
	ErrCodeInvalidAddress    = "INVALID_ADDRESS"
	ErrCodePaymentFailed     = "PAYMENT_FAILED"
	ErrCodePaymentMismatch   = "PAYMENT_MISMATCH"
	ErrCodePaymentIncomplete = "PAYMENT_INCOMPLETE"
	ErrCodeUnauthorised      = "UNAUTHORIZED"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is matches any DomainError carrying the same code, so wrapped or
// re-created errors still compare equal with errors.Is.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrProductNotFound   = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrReviewNotFound    = NewDomainError(ErrCodeReviewNotFound, "Review not found")
	ErrOrderNotFound     = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrDuplicateReview   = NewDomainError(ErrCodeDuplicateReview, "You have already reviewed this product")
	ErrInvalidRating     = NewDomainError(ErrCodeInvalidRating, "Rating must be between 1 and 5")
	ErrEmptyComment      = NewDomainError(ErrCodeEmptyComment, "Please write a review")
	ErrMissingSession    = NewDomainError(ErrCodeMissingSession, "Session ID is required")
	ErrEmptyCart         = NewDomainError(ErrCodeEmptyCart, "Cart is empty")
	ErrCouponIneligible  = NewDomainError(ErrCodeCouponIneligible, "Cart no longer meets the applied coupon's minimum order")
	ErrInvalidAmount     = NewDomainError(ErrCodeInvalidAmount, "Order total must be greater than zero")
	ErrNotReviewOwner    = NewDomainError(ErrCodeForbidden, "You can only change your own reviews")
	ErrInvalidPriceRange = NewDomainError(ErrCodeInvalidPriceRange, "Unknown price range")
	ErrInvalidSort       = NewDomainError(ErrCodeInvalidSort, "Unknown sort option")
	ErrNotInWishlist     = NewDomainError(ErrCodeNotInWishlist, "Item is not in your wishlist")
	ErrPaymentMismatch   = NewDomainError(ErrCodePaymentMismatch, "Payment does not belong to this order")
	ErrPaymentIncomplete = NewDomainError(ErrCodePaymentIncomplete, "Payment has not been completed")
)

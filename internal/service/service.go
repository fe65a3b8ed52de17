package service

import (
	"context"

	"shopfront/internal/cart"
	"shopfront/internal/catalog"
	"shopfront/internal/coupon"
	"shopfront/internal/model"
	"shopfront/internal/review"

	"github.com/google/uuid"
)

// ProductService defines read operations over the catalog.
type ProductService interface {
	// List runs the filter and sort pipeline over the catalog.
	List(ctx context.Context, q catalog.Query) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// Categories returns "All" followed by every distinct catalog category.
	Categories(ctx context.Context) ([]string, error)

	// PriceRanges returns the selectable price buckets.
	PriceRanges() []catalog.PriceBucket

	// Refresh refetches the catalog from the backing store.
	Refresh(ctx context.Context) error
}

// ShoppingService defines the per-session cart and wishlist operations.
type ShoppingService interface {
	// Cart returns the priced cart of a session.
	Cart(ctx context.Context, sessionID string) (cart.Summary, error)

	// AddToCart adds one unit of a product.
	AddToCart(ctx context.Context, sessionID, productID string) (cart.Summary, error)

	// RemoveFromCart removes one unit of a product. Removing an absent product is a no-op.
	RemoveFromCart(ctx context.Context, sessionID, productID string) (cart.Summary, error)

	// ApplyCoupon applies a coupon code. A rejected code is reported in the
	// result, not as an error.
	ApplyCoupon(ctx context.Context, sessionID, code string) (cart.CouponResult, cart.Summary, error)

	// RemoveCoupon clears the applied coupon.
	RemoveCoupon(ctx context.Context, sessionID string) (cart.Summary, error)

	// Coupons lists the coupon table.
	Coupons() []coupon.Coupon

	// Wishlist returns the saved products of a session.
	Wishlist(ctx context.Context, sessionID string) ([]model.Product, error)

	// AddToWishlist saves a product. A duplicate leaves the wishlist unchanged
	// and reports added=false with a notice.
	AddToWishlist(ctx context.Context, sessionID, productID string) (*WishlistResult, error)

	// RemoveFromWishlist drops a product from the wishlist.
	RemoveFromWishlist(ctx context.Context, sessionID, productID string) ([]model.Product, error)

	// MoveToCart moves a saved product into the cart.
	MoveToCart(ctx context.Context, sessionID, productID string) (*MoveResult, error)
}

// WishlistResult is the outcome of adding to a wishlist.
type WishlistResult struct {
	Added   bool            `json:"added"`
	Message string          `json:"message"`
	Items   []model.Product `json:"items"`
}

// MoveResult is the cart and wishlist after a move-to-cart.
type MoveResult struct {
	Cart     cart.Summary    `json:"cart"`
	Wishlist []model.Product `json:"wishlist"`
}

// ReviewService defines operations for product reviews.
type ReviewService interface {
	// ListByProduct returns the reviews of a product with their rating summary.
	ListByProduct(ctx context.Context, productID string, sort review.SortKey) (*model.ReviewListResponse, error)

	// Create submits a new review.
	Create(ctx context.Context, req *model.ReviewRequest) (*model.Review, error)

	// ToggleHelpful adds or withdraws a user's helpful vote.
	ToggleHelpful(ctx context.Context, id uuid.UUID, userID string) (*model.Review, error)

	// Update edits a review owned by req.UserID.
	Update(ctx context.Context, id uuid.UUID, req *model.ReviewUpdateRequest) (*model.Review, error)

	// Delete removes a review owned by userID.
	Delete(ctx context.Context, id uuid.UUID, userID string) error
}

// CheckoutService defines order creation and payment confirmation.
type CheckoutService interface {
	// CreateOrder starts a payment for the session cart and records a pending order.
	CreateOrder(ctx context.Context, sessionID string, req *model.CreateOrderRequest) (*model.CreateOrderResponse, error)

	// VerifyPayment checks the payment with the processor and settles the order.
	VerifyPayment(ctx context.Context, req *model.VerifyPaymentRequest) (*model.Order, error)
}

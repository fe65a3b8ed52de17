package handler

import (
	"context"

	"shopfront/internal/cart"
	"shopfront/internal/catalog"
	"shopfront/internal/coupon"
	"shopfront/internal/model"
	"shopfront/internal/review"
	"shopfront/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockProductService is a mock implementation of ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(ctx context.Context, q catalog.Query) ([]model.Product, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockProductService) PriceRanges() []catalog.PriceBucket {
	args := m.Called()
	return args.Get(0).([]catalog.PriceBucket)
}

func (m *MockProductService) Refresh(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockShoppingService is a mock implementation of ShoppingService.
type MockShoppingService struct {
	mock.Mock
}

func (m *MockShoppingService) Cart(ctx context.Context, sessionID string) (cart.Summary, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(cart.Summary), args.Error(1)
}

func (m *MockShoppingService) AddToCart(ctx context.Context, sessionID, productID string) (cart.Summary, error) {
	args := m.Called(ctx, sessionID, productID)
	return args.Get(0).(cart.Summary), args.Error(1)
}

func (m *MockShoppingService) RemoveFromCart(ctx context.Context, sessionID, productID string) (cart.Summary, error) {
	args := m.Called(ctx, sessionID, productID)
	return args.Get(0).(cart.Summary), args.Error(1)
}

func (m *MockShoppingService) ApplyCoupon(ctx context.Context, sessionID, code string) (cart.CouponResult, cart.Summary, error) {
	args := m.Called(ctx, sessionID, code)
	return args.Get(0).(cart.CouponResult), args.Get(1).(cart.Summary), args.Error(2)
}

func (m *MockShoppingService) RemoveCoupon(ctx context.Context, sessionID string) (cart.Summary, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(cart.Summary), args.Error(1)
}

func (m *MockShoppingService) Coupons() []coupon.Coupon {
	args := m.Called()
	return args.Get(0).([]coupon.Coupon)
}

func (m *MockShoppingService) Wishlist(ctx context.Context, sessionID string) ([]model.Product, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockShoppingService) AddToWishlist(ctx context.Context, sessionID, productID string) (*service.WishlistResult, error) {
	args := m.Called(ctx, sessionID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.WishlistResult), args.Error(1)
}

func (m *MockShoppingService) RemoveFromWishlist(ctx context.Context, sessionID, productID string) ([]model.Product, error) {
	args := m.Called(ctx, sessionID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockShoppingService) MoveToCart(ctx context.Context, sessionID, productID string) (*service.MoveResult, error) {
	args := m.Called(ctx, sessionID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.MoveResult), args.Error(1)
}

// MockReviewService is a mock implementation of ReviewService.
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) ListByProduct(ctx context.Context, productID string, sort review.SortKey) (*model.ReviewListResponse, error) {
	args := m.Called(ctx, productID, sort)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReviewListResponse), args.Error(1)
}

func (m *MockReviewService) Create(ctx context.Context, req *model.ReviewRequest) (*model.Review, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewService) ToggleHelpful(ctx context.Context, id uuid.UUID, userID string) (*model.Review, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewService) Update(ctx context.Context, id uuid.UUID, req *model.ReviewUpdateRequest) (*model.Review, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewService) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockCheckoutService is a mock implementation of CheckoutService.
type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) CreateOrder(ctx context.Context, sessionID string, req *model.CreateOrderRequest) (*model.CreateOrderResponse, error) {
	args := m.Called(ctx, sessionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CreateOrderResponse), args.Error(1)
}

func (m *MockCheckoutService) VerifyPayment(ctx context.Context, req *model.VerifyPaymentRequest) (*model.Order, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

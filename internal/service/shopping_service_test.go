package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"shopfront/internal/catalog"
	"shopfront/internal/coupon"
	"shopfront/internal/model"
	"shopfront/internal/session"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestShoppingService(t *testing.T) (ShoppingService, session.Store) {
	t.Helper()
	source := new(MockProductSource)
	source.On("ListProducts", mock.Anything).Return(testCatalog(), nil)
	products := NewProductService(catalog.NewStore(source, zerolog.Nop()), new(MockReviewRepository), zerolog.Nop())
	sessions := session.NewMemoryStore(time.Hour)
	return NewShoppingService(sessions, products, coupon.DefaultTable(), zerolog.Nop()), sessions
}

func TestShoppingService_Cart(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestShoppingService(t)

	summary, err := svc.AddToCart(ctx, "s1", "P002")
	require.NoError(t, err)
	assert.Equal(t, int64(599), summary.Subtotal)
	assert.Equal(t, 1, summary.ItemCount)

	summary, err = svc.AddToCart(ctx, "s1", "P002")
	require.NoError(t, err)
	assert.Equal(t, int64(1198), summary.Subtotal)
	assert.Equal(t, 2, summary.ItemCount)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, 2, summary.Items[0].Quantity)

	summary, err = svc.RemoveFromCart(ctx, "s1", "P002")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.ItemCount)

	// Other sessions are untouched.
	other, err := svc.Cart(ctx, "s2")
	require.NoError(t, err)
	assert.Equal(t, 0, other.ItemCount)

	summary, err = svc.Cart(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(599), summary.Subtotal)
	assert.Equal(t, int64(0), summary.DeliveryFee)
}

func TestShoppingService_RemoveFromEmptyCart(t *testing.T) {
	svc, _ := newTestShoppingService(t)

	summary, err := svc.RemoveFromCart(context.Background(), "s1", "P001")

	require.NoError(t, err)
	assert.Equal(t, 0, summary.ItemCount)
	assert.Empty(t, summary.Items)
}

func TestShoppingService_Errors(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestShoppingService(t)

	tests := []struct {
		name        string
		call        func() error
		expectedErr error
	}{
		{
			name: "Missing session",
			call: func() error {
				_, err := svc.Cart(ctx, "")
				return err
			},
			expectedErr: model.ErrMissingSession,
		},
		{
			name: "Unknown product",
			call: func() error {
				_, err := svc.AddToCart(ctx, "s1", "P999")
				return err
			},
			expectedErr: model.ErrProductNotFound,
		},
		{
			name: "Unknown wishlist product",
			call: func() error {
				_, err := svc.AddToWishlist(ctx, "s1", "P999")
				return err
			},
			expectedErr: model.ErrProductNotFound,
		},
		{
			name: "Move product that is not saved",
			call: func() error {
				_, err := svc.MoveToCart(ctx, "s1", "P001")
				return err
			},
			expectedErr: model.ErrNotInWishlist,
		},
		{
			name: "Missing product id",
			call: func() error {
				_, err := svc.AddToCart(ctx, "s1", "")
				return err
			},
			expectedErr: model.NewDomainError(model.ErrCodeMissingField, ""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func TestShoppingService_ApplyCoupon(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestShoppingService(t)

	// Subtotal 599: SAVE100 needs 500.
	_, err := svc.AddToCart(ctx, "s1", "P002")
	require.NoError(t, err)

	result, summary, err := svc.ApplyCoupon(ctx, "s1", "save100")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "Coupon applied! You saved ₹100", result.Message)
	require.NotNil(t, summary.AppliedCoupon)
	assert.Equal(t, "SAVE100", summary.AppliedCoupon.Code)
	assert.True(t, decimal.NewFromInt(499).Equal(summary.FinalTotal))

	// A rejected coupon keeps the applied one.
	result, summary, err = svc.ApplyCoupon(ctx, "s1", "FESTIVE25")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "Minimum order of ₹1000 required", result.Message)
	require.NotNil(t, summary.AppliedCoupon)
	assert.Equal(t, "SAVE100", summary.AppliedCoupon.Code)
	assert.True(t, decimal.NewFromInt(100).Equal(summary.Discount))

	summary, err = svc.RemoveCoupon(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, summary.AppliedCoupon)
	assert.True(t, summary.Discount.IsZero())
}

func TestShoppingService_ApplyCoupon_Invalid(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestShoppingService(t)

	result, _, err := svc.ApplyCoupon(ctx, "s1", "NOPE")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "Invalid coupon code", result.Message)

	_, _, err = svc.ApplyCoupon(ctx, "s1", "  ")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.NewDomainError(model.ErrCodeMissingField, ""))
}

func TestShoppingService_Coupons(t *testing.T) {
	svc, _ := newTestShoppingService(t)

	coupons := svc.Coupons()

	assert.Len(t, coupons, 3)
}

func TestShoppingService_Wishlist(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestShoppingService(t)

	result, err := svc.AddToWishlist(ctx, "s1", "P003")
	require.NoError(t, err)
	assert.True(t, result.Added)
	assert.Equal(t, "Headphones added to wishlist!", result.Message)
	assert.Len(t, result.Items, 1)

	result, err = svc.AddToWishlist(ctx, "s1", "P003")
	require.NoError(t, err)
	assert.False(t, result.Added)
	assert.Equal(t, "Item already in wishlist!", result.Message)
	assert.Len(t, result.Items, 1)

	_, err = svc.AddToWishlist(ctx, "s1", "P001")
	require.NoError(t, err)

	items, err := svc.RemoveFromWishlist(ctx, "s1", "P003")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "P001", items[0].ID)

	items, err = svc.Wishlist(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestShoppingService_MoveToCart(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestShoppingService(t)

	_, err := svc.AddToWishlist(ctx, "s1", "P001")
	require.NoError(t, err)

	moved, err := svc.MoveToCart(ctx, "s1", "P001")
	require.NoError(t, err)
	assert.Empty(t, moved.Wishlist)
	assert.Equal(t, 1, moved.Cart.ItemCount)
	assert.Equal(t, int64(7999), moved.Cart.Subtotal)
}

func TestShoppingService_StoreFailure(t *testing.T) {
	ctx := context.Background()
	source := new(MockProductSource)
	source.On("ListProducts", mock.Anything).Return(testCatalog(), nil)
	products := NewProductService(catalog.NewStore(source, zerolog.Nop()), new(MockReviewRepository), zerolog.Nop())
	sessions := new(MockSessionStore)
	svc := NewShoppingService(sessions, products, coupon.DefaultTable(), zerolog.Nop())

	storeErr := errors.New("redis: connection refused")
	sessions.On("Get", ctx, "s1").Return(nil, storeErr)
	sessions.On("Update", ctx, "s1", mock.Anything).Return(nil, storeErr)

	_, err := svc.Cart(ctx, "s1")
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)

	_, err = svc.AddToCart(ctx, "s1", "P001")
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)

	var domainErr *model.DomainError
	assert.False(t, errors.As(err, &domainErr))
}

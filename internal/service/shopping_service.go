package service

import (
	"context"
	"fmt"
	"strings"

	"shopfront/internal/cart"
	"shopfront/internal/coupon"
	"shopfront/internal/model"
	"shopfront/internal/session"

	"github.com/rs/zerolog"
)

// shoppingService implements ShoppingService.
type shoppingService struct {
	sessions session.Store
	products ProductService
	coupons  *coupon.Table
	logger   zerolog.Logger
}

// NewShoppingService creates a new cart and wishlist service.
func NewShoppingService(sessions session.Store, products ProductService, coupons *coupon.Table, logger zerolog.Logger) ShoppingService {
	return &shoppingService{
		sessions: sessions,
		products: products,
		coupons:  coupons,
		logger:   logger.With().Str("service", "shopping").Logger(),
	}
}

func (s *shoppingService) Cart(ctx context.Context, sessionID string) (cart.Summary, error) {
	sess, err := s.get(ctx, sessionID)
	if err != nil {
		return cart.Summary{}, err
	}
	return sess.Cart.Summary(), nil
}

func (s *shoppingService) AddToCart(ctx context.Context, sessionID, productID string) (cart.Summary, error) {
	product, err := s.product(ctx, productID)
	if err != nil {
		return cart.Summary{}, err
	}

	sess, err := s.update(ctx, sessionID, "add to cart", func(sess *session.Session) error {
		sess.Cart.Add(*product)
		return nil
	})
	if err != nil {
		return cart.Summary{}, err
	}

	s.logger.Debug().
		Str("session_id", sessionID).
		Str("product_id", productID).
		Int("quantity", sess.Cart.Quantity(productID)).
		Msg("added to cart")

	return sess.Cart.Summary(), nil
}

func (s *shoppingService) RemoveFromCart(ctx context.Context, sessionID, productID string) (cart.Summary, error) {
	sess, err := s.update(ctx, sessionID, "remove from cart", func(sess *session.Session) error {
		sess.Cart.Remove(productID)
		return nil
	})
	if err != nil {
		return cart.Summary{}, err
	}
	return sess.Cart.Summary(), nil
}

func (s *shoppingService) ApplyCoupon(ctx context.Context, sessionID, code string) (cart.CouponResult, cart.Summary, error) {
	if strings.TrimSpace(code) == "" {
		return cart.CouponResult{}, cart.Summary{}, model.NewDomainError(model.ErrCodeMissingField, "code is required")
	}

	var result cart.CouponResult
	sess, err := s.update(ctx, sessionID, "apply coupon", func(sess *session.Session) error {
		result = sess.Cart.ApplyCoupon(s.coupons, code)
		return nil
	})
	if err != nil {
		return cart.CouponResult{}, cart.Summary{}, err
	}

	s.logger.Debug().
		Str("session_id", sessionID).
		Str("coupon_code", code).
		Bool("success", result.Success).
		Msg(result.Message)

	return result, sess.Cart.Summary(), nil
}

func (s *shoppingService) RemoveCoupon(ctx context.Context, sessionID string) (cart.Summary, error) {
	sess, err := s.update(ctx, sessionID, "remove coupon", func(sess *session.Session) error {
		sess.Cart.RemoveCoupon()
		return nil
	})
	if err != nil {
		return cart.Summary{}, err
	}
	return sess.Cart.Summary(), nil
}

func (s *shoppingService) Coupons() []coupon.Coupon {
	return s.coupons.All()
}

func (s *shoppingService) Wishlist(ctx context.Context, sessionID string) ([]model.Product, error) {
	sess, err := s.get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Wishlist.Items(), nil
}

// AddToWishlist saves a product. A duplicate is not an error.
func (s *shoppingService) AddToWishlist(ctx context.Context, sessionID, productID string) (*WishlistResult, error) {
	product, err := s.product(ctx, productID)
	if err != nil {
		return nil, err
	}

	result := &WishlistResult{}
	sess, err := s.update(ctx, sessionID, "add to wishlist", func(sess *session.Session) error {
		result.Added, result.Message = sess.Wishlist.Add(*product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.Items = sess.Wishlist.Items()

	return result, nil
}

func (s *shoppingService) RemoveFromWishlist(ctx context.Context, sessionID, productID string) ([]model.Product, error) {
	sess, err := s.update(ctx, sessionID, "remove from wishlist", func(sess *session.Session) error {
		sess.Wishlist.Remove(productID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sess.Wishlist.Items(), nil
}

func (s *shoppingService) MoveToCart(ctx context.Context, sessionID, productID string) (*MoveResult, error) {
	sess, err := s.update(ctx, sessionID, "move to cart", func(sess *session.Session) error {
		if !sess.Wishlist.MoveToCart(productID, sess.Cart) {
			return model.ErrNotInWishlist
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &MoveResult{
		Cart:     sess.Cart.Summary(),
		Wishlist: sess.Wishlist.Items(),
	}, nil
}

func (s *shoppingService) product(ctx context.Context, productID string) (*model.Product, error) {
	if productID == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "productId is required")
	}
	return s.products.GetByID(ctx, productID)
}

func (s *shoppingService) get(ctx context.Context, sessionID string) (*session.Session, error) {
	if sessionID == "" {
		return nil, model.ErrMissingSession
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to load session")
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return sess, nil
}

// update applies fn to the session. Domain errors from fn pass through untouched.
func (s *shoppingService) update(ctx context.Context, sessionID, op string, fn func(*session.Session) error) (*session.Session, error) {
	if sessionID == "" {
		return nil, model.ErrMissingSession
	}

	sess, err := s.sessions.Update(ctx, sessionID, fn)
	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("session_id", sessionID).Msgf("failed to %s", op)
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}
	return sess, nil
}

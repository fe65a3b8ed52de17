package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shopfront/internal/model"
	"shopfront/internal/payment"
	"shopfront/internal/repository"
	"shopfront/internal/session"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// checkoutService implements CheckoutService.
type checkoutService struct {
	orderRepo repository.OrderRepository
	sessions  session.Store
	gateway   payment.Gateway
	currency  string
	logger    zerolog.Logger
}

// NewCheckoutService creates a new checkout service. currency is used when
// an order request does not name one.
func NewCheckoutService(
	orderRepo repository.OrderRepository,
	sessions session.Store,
	gateway payment.Gateway,
	currency string,
	logger zerolog.Logger,
) CheckoutService {
	return &checkoutService{
		orderRepo: orderRepo,
		sessions:  sessions,
		gateway:   gateway,
		currency:  currency,
		logger:    logger.With().Str("service", "checkout").Logger(),
	}
}

// CreateOrder starts a payment for the session cart, records the order as
// pending and takes the ordered lines out of the cart.
func (s *checkoutService) CreateOrder(ctx context.Context, sessionID string, req *model.CreateOrderRequest) (_ *model.CreateOrderResponse, err error) {
	if sessionID == "" {
		return nil, model.ErrMissingSession
	}
	if err := validateOrderRequest(req); err != nil {
		s.logger.Warn().Err(err).Str("session_id", sessionID).Msg("invalid order request")
		return nil, err
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to load session")
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if sess.Cart.IsEmpty() {
		return nil, model.ErrEmptyCart
	}

	summary := sess.Cart.Summary()

	// The discount is fixed when the coupon is applied, so lines removed
	// since then can leave the cart under the coupon's minimum.
	if c := summary.AppliedCoupon; c != nil && !c.Eligible(summary.Subtotal) {
		s.logger.Warn().
			Str("session_id", sessionID).
			Str("coupon", c.Code).
			Int64("subtotal", summary.Subtotal).
			Msg("applied coupon no longer eligible")
		return nil, model.NewDomainError(model.ErrCodeCouponIneligible,
			fmt.Sprintf("Minimum order of ₹%d required for coupon %s", c.MinOrder, c.Code))
	}
	if !summary.FinalTotal.IsPositive() {
		s.logger.Warn().
			Str("session_id", sessionID).
			Str("final_total", summary.FinalTotal.String()).
			Msg("order total is not positive")
		return nil, model.ErrInvalidAmount
	}

	currency := payment.NormaliseCurrency(req.Currency, s.currency)

	intent, err := s.gateway.CreateIntent(ctx, payment.IntentParams{
		Amount:   summary.FinalTotal,
		Currency: currency,
		Metadata: map[string]string{
			"userId":    req.UserID,
			"userName":  req.UserName,
			"userEmail": req.UserEmail,
			"sessionId": sessionID,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	now := time.Now()
	order := &model.Order{
		ID:              uuid.New(),
		OrderID:         intent.ID,
		UserID:          req.UserID,
		UserName:        strings.TrimSpace(req.UserName),
		UserEmail:       strings.TrimSpace(req.UserEmail),
		TotalAmount:     summary.FinalTotal,
		Currency:        currency,
		ShippingAddress: req.ShippingAddress,
		Status:          model.OrderStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if summary.AppliedCoupon != nil {
		code := summary.AppliedCoupon.Code
		order.CouponCode = &code
	}

	items := make([]model.OrderItem, len(summary.Items))
	for i, line := range summary.Items {
		items[i] = model.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			Price:     line.Product.Price,
			Quantity:  line.Quantity,
			ImageURL:  line.Product.ImageURL,
		}
	}
	order.Items = items

	// Start transaction
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.OrderID).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, items); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.OrderID).
			Int("item_count", len(items)).
			Msg("failed to create order items")
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.OrderID).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Only the ordered units leave the cart; anything added while the payment
	// was being created stays. The order is already recorded, so a failure
	// here only leaves the cart as it was.
	if _, clearErr := s.sessions.Update(ctx, sessionID, func(sess *session.Session) error {
		sess.Cart.Deduct(summary.Items)
		if c, ok := sess.Cart.AppliedCoupon(); ok && summary.AppliedCoupon != nil && c.Code == summary.AppliedCoupon.Code {
			sess.Cart.RemoveCoupon()
		}
		return nil
	}); clearErr != nil {
		s.logger.Warn().Err(clearErr).Str("session_id", sessionID).Msg("failed to clear cart after order")
	}

	s.logger.Info().
		Str("order_id", order.OrderID).
		Str("amount", order.TotalAmount.StringFixed(2)).
		Str("currency", currency).
		Int("item_count", len(items)).
		Msg("order created successfully")

	return &model.CreateOrderResponse{
		Success:        true,
		OrderID:        intent.ID,
		ClientSecret:   intent.ClientSecret,
		PublishableKey: s.gateway.PublishableKey(),
		Amount:         order.TotalAmount,
		Currency:       currency,
	}, nil
}

// VerifyPayment settles an order from the processor's view of its payment.
// A succeeded payment marks the order paid and a cancelled one marks it
// cancelled. Anything still in progress is reported as incomplete and
// leaves the order pending.
func (s *checkoutService) VerifyPayment(ctx context.Context, req *model.VerifyPaymentRequest) (*model.Order, error) {
	if req == nil {
		return nil, fmt.Errorf("verify request is nil")
	}
	switch {
	case strings.TrimSpace(req.PaymentIntentID) == "":
		return nil, model.NewDomainError(model.ErrCodeMissingField, "paymentIntentId is required")
	case strings.TrimSpace(req.OrderID) == "":
		return nil, model.NewDomainError(model.ErrCodeMissingField, "orderId is required")
	}

	order, err := s.orderRepo.GetByOrderID(ctx, req.OrderID)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", req.OrderID).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}
	if order.Status == model.OrderStatusPaid {
		return order, nil
	}

	intent, err := s.gateway.GetIntent(ctx, req.PaymentIntentID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify payment: %w", err)
	}
	if intent.ID != order.OrderID {
		s.logger.Warn().
			Str("order_id", order.OrderID).
			Str("payment_intent", intent.ID).
			Msg("payment does not match order")
		return nil, model.ErrPaymentMismatch
	}

	var status model.OrderStatus
	switch intent.Status {
	case payment.StatusSucceeded:
		status = model.OrderStatusPaid
	case payment.StatusCanceled:
		status = model.OrderStatusCancelled
	default:
		s.logger.Debug().
			Str("order_id", order.OrderID).
			Str("intent_status", string(intent.Status)).
			Msg("payment not completed")
		return nil, model.ErrPaymentIncomplete
	}

	paymentID := intent.ID
	if err := s.orderRepo.UpdateStatus(ctx, order.OrderID, status, &paymentID); err != nil {
		if isDomainError(err) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("order_id", order.OrderID).Msg("failed to update order status")
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	order.Status = status
	order.PaymentID = &paymentID
	order.UpdatedAt = time.Now()

	s.logger.Info().
		Str("order_id", order.OrderID).
		Str("status", string(status)).
		Msg("payment verified")

	return order, nil
}

// validateOrderRequest validates the order request.
func validateOrderRequest(req *model.CreateOrderRequest) error {
	if req == nil {
		return fmt.Errorf("order request is nil")
	}

	required := []struct{ name, value string }{
		{"userId", req.UserID},
		{"userName", req.UserName},
		{"userEmail", req.UserEmail},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return model.NewDomainError(model.ErrCodeMissingField, f.name+" is required")
		}
	}

	addr := req.ShippingAddress
	address := []struct{ name, value string }{
		{"fullName", addr.FullName},
		{"address", addr.Address},
		{"city", addr.City},
		{"pincode", addr.Pincode},
		{"phone", addr.Phone},
	}
	for _, f := range address {
		if strings.TrimSpace(f.value) == "" {
			return model.NewDomainError(model.ErrCodeInvalidAddress, "shippingAddress."+f.name+" is required")
		}
	}

	return nil
}

package handler

import (
	"net/http"

	"shopfront/internal/cart"
	"shopfront/internal/service"

	"github.com/rs/zerolog"
)

// CartItemRequest names the product a cart or wishlist request acts on.
type CartItemRequest struct {
	ProductID string `json:"productId"`
}

// CouponRequest carries the coupon code to apply.
type CouponRequest struct {
	Code string `json:"code"`
}

// CouponResponse reports a coupon application alongside the repriced cart.
type CouponResponse struct {
	cart.CouponResult
	Cart cart.Summary `json:"cart"`
}

// CartHandler handles cart and coupon HTTP requests.
type CartHandler struct {
	service service.ShoppingService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.ShoppingService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// Get handles GET /api/cart requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r, h.logger)
	if !ok {
		return
	}

	summary, err := h.service.Cart(r.Context(), sid)
	if err != nil {
		writeServiceError(w, err, "failed to retrieve cart", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// AddItem handles POST /api/cart/items requests.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r, h.logger)
	if !ok {
		return
	}

	var req CartItemRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	summary, err := h.service.AddToCart(r.Context(), sid, req.ProductID)
	if err != nil {
		writeServiceError(w, err, "failed to update cart", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// RemoveItem handles DELETE /api/cart/items/{productId} requests.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r, h.logger)
	if !ok {
		return
	}

	summary, err := h.service.RemoveFromCart(r.Context(), sid, r.PathValue("productId"))
	if err != nil {
		writeServiceError(w, err, "failed to update cart", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// ApplyCoupon handles POST /api/cart/coupon requests. A rejected code is a
// normal response with success false.
func (h *CartHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r, h.logger)
	if !ok {
		return
	}

	var req CouponRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	result, summary, err := h.service.ApplyCoupon(r.Context(), sid, req.Code)
	if err != nil {
		writeServiceError(w, err, "failed to apply coupon", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, CouponResponse{CouponResult: result, Cart: summary})
}

// RemoveCoupon handles DELETE /api/cart/coupon requests.
func (h *CartHandler) RemoveCoupon(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r, h.logger)
	if !ok {
		return
	}

	summary, err := h.service.RemoveCoupon(r.Context(), sid)
	if err != nil {
		writeServiceError(w, err, "failed to remove coupon", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// Coupons handles GET /api/coupons requests.
func (h *CartHandler) Coupons(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Coupons())
}

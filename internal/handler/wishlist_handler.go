package handler

import (
	"net/http"

	"shopfront/internal/service"

	"github.com/rs/zerolog"
)

// WishlistHandler handles wishlist HTTP requests.
type WishlistHandler struct {
	service service.ShoppingService
	logger  zerolog.Logger
}

// NewWishlistHandler creates a new wishlist handler.
func NewWishlistHandler(service service.ShoppingService, logger zerolog.Logger) *WishlistHandler {
	return &WishlistHandler{
		service: service,
		logger:  logger.With().Str("handler", "wishlist").Logger(),
	}
}

// Get handles GET /api/wishlist requests.
func (h *WishlistHandler) Get(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r, h.logger)
	if !ok {
		return
	}

	items, err := h.service.Wishlist(r.Context(), sid)
	if err != nil {
		writeServiceError(w, err, "failed to retrieve wishlist", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// AddItem handles POST /api/wishlist/items requests. Saving a product
// twice answers 200 with added false.
func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r, h.logger)
	if !ok {
		return
	}

	var req CartItemRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	result, err := h.service.AddToWishlist(r.Context(), sid, req.ProductID)
	if err != nil {
		writeServiceError(w, err, "failed to update wishlist", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// RemoveItem handles DELETE /api/wishlist/items/{productId} requests.
func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r, h.logger)
	if !ok {
		return
	}

	items, err := h.service.RemoveFromWishlist(r.Context(), sid, r.PathValue("productId"))
	if err != nil {
		writeServiceError(w, err, "failed to update wishlist", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// MoveToCart handles POST /api/wishlist/items/{productId}/move-to-cart requests.
func (h *WishlistHandler) MoveToCart(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r, h.logger)
	if !ok {
		return
	}

	result, err := h.service.MoveToCart(r.Context(), sid, r.PathValue("productId"))
	if err != nil {
		writeServiceError(w, err, "failed to move item to cart", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

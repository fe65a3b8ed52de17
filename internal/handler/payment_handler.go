package handler

import (
	"net/http"

	"shopfront/internal/model"
	"shopfront/internal/service"

	"github.com/rs/zerolog"
)

// VerifyPaymentResponse reports the settled order.
type VerifyPaymentResponse struct {
	Success bool         `json:"success"`
	Order   *model.Order `json:"order"`
}

// PaymentHandler handles checkout HTTP requests.
type PaymentHandler struct {
	service service.CheckoutService
	logger  zerolog.Logger
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(service service.CheckoutService, logger zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		logger:  logger.With().Str("handler", "payment").Logger(),
	}
}

// CreateOrder handles POST /api/payments/create-order requests.
func (h *PaymentHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r, h.logger)
	if !ok {
		return
	}

	var req model.CreateOrderRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	resp, err := h.service.CreateOrder(r.Context(), sid, &req)
	if err != nil {
		writeServiceError(w, err, "Failed to create payment order", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// VerifyPayment handles POST /api/payments/verify-payment requests.
func (h *PaymentHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req model.VerifyPaymentRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	order, err := h.service.VerifyPayment(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, "Failed to verify payment", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, VerifyPaymentResponse{
		Success: order.Status == model.OrderStatusPaid,
		Order:   order,
	})
}

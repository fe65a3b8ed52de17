package handler

import (
	"net/http"

	"shopfront/internal/model"
	"shopfront/internal/review"
	"shopfront/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ReviewHandler handles review-related HTTP requests.
type ReviewHandler struct {
	service service.ReviewService
	logger  zerolog.Logger
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(service service.ReviewService, logger zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		logger:  logger.With().Str("handler", "review").Logger(),
	}
}

// ListByProduct handles GET /api/reviews/product/{productId}?sort= requests.
func (h *ReviewHandler) ListByProduct(w http.ResponseWriter, r *http.Request) {
	sortKey, err := review.ParseSortKey(r.URL.Query().Get("sort"))
	if err != nil {
		writeServiceError(w, err, "invalid sort", h.logger)
		return
	}

	resp, err := h.service.ListByProduct(r.Context(), r.PathValue("productId"), sortKey)
	if err != nil {
		writeServiceError(w, err, "failed to retrieve reviews", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Create handles POST /api/reviews requests.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.ReviewRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	created, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, "failed to create review", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// ToggleHelpful handles PUT /api/reviews/{id}/helpful requests.
func (h *ReviewHandler) ToggleHelpful(w http.ResponseWriter, r *http.Request) {
	id, ok := h.reviewID(w, r)
	if !ok {
		return
	}

	var req model.ReviewVoterRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	updated, err := h.service.ToggleHelpful(r.Context(), id, req.UserID)
	if err != nil {
		writeServiceError(w, err, "failed to update review", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// Update handles PUT /api/reviews/{id} requests.
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.reviewID(w, r)
	if !ok {
		return
	}

	var req model.ReviewUpdateRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	updated, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err, "failed to update review", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/reviews/{id} requests.
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.reviewID(w, r)
	if !ok {
		return
	}

	var req model.ReviewVoterRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	if err := h.service.Delete(r.Context(), id, req.UserID); err != nil {
		writeServiceError(w, err, "failed to delete review", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Review deleted"})
}

func (h *ReviewHandler) reviewID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, model.ErrReviewNotFound.Message, model.ErrCodeReviewNotFound, h.logger)
		return uuid.Nil, false
	}
	return id, true
}

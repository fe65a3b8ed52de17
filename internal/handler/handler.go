package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"shopfront/internal/model"
	"shopfront/internal/payment"

	"github.com/rs/zerolog"
)

// SessionHeader carries the shopper's session id on cart, wishlist and checkout requests.
const SessionHeader = "X-Session-ID"

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code, message and code.
func writeError(w http.ResponseWriter, status int, message, code string, logger zerolog.Logger) {
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Str("error", message).Str("code", code).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: message, Code: code})
}

// writeServiceError maps an error returned by a service to a response.
// Domain errors carry their own message; payment processor errors surface
// the processor's message; anything else becomes fallback.
func writeServiceError(w http.ResponseWriter, err error, fallback string, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		writeError(w, statusForCode(domainErr.Code), domainErr.Message, domainErr.Code, logger)
		return
	}

	var remoteErr *payment.RemoteError
	if errors.As(err, &remoteErr) {
		logger.Error().Err(err).Msg("payment processor error")
		writeError(w, http.StatusBadGateway, remoteErr.Message, model.ErrCodePaymentFailed, logger)
		return
	}

	logger.Error().Err(err).Msg(fallback)
	writeError(w, http.StatusInternalServerError, fallback, model.ErrCodeInternalError, logger)
}

func statusForCode(code string) int {
	switch code {
	case model.ErrCodeProductNotFound, model.ErrCodeReviewNotFound,
		model.ErrCodeOrderNotFound, model.ErrCodeNotInWishlist:
		return http.StatusNotFound
	case model.ErrCodeDuplicateReview:
		return http.StatusConflict
	case model.ErrCodeForbidden:
		return http.StatusForbidden
	case model.ErrCodeUnauthorised:
		return http.StatusUnauthorized
	case model.ErrCodePaymentFailed:
		return http.StatusBadGateway
	case model.ErrCodeInternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// decodeJSON reads the request body into v and writes a 400 when it cannot.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}, logger zerolog.Logger) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", model.ErrCodeInvalidJSON, logger)
		return false
	}
	return true
}

// sessionID returns the caller's session id or writes a 400 when it is missing.
func sessionID(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) (string, bool) {
	id := r.Header.Get(SessionHeader)
	if id == "" {
		writeError(w, http.StatusBadRequest, model.ErrMissingSession.Message, model.ErrCodeMissingSession, logger)
		return "", false
	}
	return id, true
}

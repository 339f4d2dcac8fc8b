package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/technotes/backend/internal/services"
	"go.uber.org/zap"
)

// BaseHandler provides common handler functionality
type BaseHandler struct {
	logger *zap.Logger
}

// respondJSON sends a JSON response
func (h *BaseHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// respondMessage sends a JSON response whose body is a single message field
func (h *BaseHandler) respondMessage(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"message": message})
}

// respondServiceError maps a business-rule failure to its status code and JSON
// message body. Anything that is not a services.Error is an internal error.
func (h *BaseHandler) respondServiceError(w http.ResponseWriter, err error) {
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		h.respondMessage(w, statusForKind(svcErr.Kind), svcErr.Message)
		return
	}

	h.logger.Error("internal error", zap.Error(err))
	h.respondMessage(w, http.StatusInternalServerError, "Internal Server Error")
}

// statusForKind maps the failure taxonomy to HTTP status codes. NotFound and
// Blocked report 400, matching the contract of the original service.
func statusForKind(kind services.Kind) int {
	switch kind {
	case services.KindValidation, services.KindNotFound, services.KindBlocked:
		return http.StatusBadRequest
	case services.KindConflict:
		return http.StatusConflict
	case services.KindUnauthorized:
		return http.StatusUnauthorized
	case services.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/avasiliev/cadastral-service/internal/domain"
	"github.com/avasiliev/cadastral-service/internal/verifier"
)

// ErrorDetail is the inner payload of every error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the JSON envelope for all error responses.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// writeJSON marshals v into the response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the standard error envelope.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// writeDomainError maps a service-layer error to its HTTP response.
// Unrecognized errors are logged and masked as a generic 500 — infrastructure
// detail never reaches the client.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
	case errors.Is(err, domain.ErrEmailTaken):
		writeError(w, http.StatusConflict, "conflict", "User already exists")
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "unauthorized", "invalid username or password")
	case errors.Is(err, domain.ErrInactiveUser):
		writeError(w, http.StatusForbidden, "forbidden", "user inactive")
	case errors.Is(err, verifier.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "service_unavailable", verifier.ErrUnavailable.Error())
	default:
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel
// error. e.g. "validation error: limit must be between 1 and 100" →
// "limit must be between 1 and 100". The full text is kept when the sentinel
// prefix is absent.
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if i := strings.Index(msg, domain.ErrValidation.Error()+": "); i >= 0 {
		return msg[i+len(domain.ErrValidation.Error())+2:]
	}
	return msg
}

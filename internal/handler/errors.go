package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mkumaran/trip-tracker/backend/internal/domain"
)

// errorBody is the JSON error envelope every non-2xx response uses.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck — nothing to do if the client is gone.
	json.NewEncoder(w).Encode(v)
}

// writeError maps a sentinel error from the service/repo layers to an HTTP
// status and writes the standard error body. Unrecognized errors become an
// opaque 500; their detail is logged, not leaked.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{errorDetail{"not_found", unwrapMessage(err)}})
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{errorDetail{"validation_error", unwrapMessage(err)}})
	case errors.Is(err, domain.ErrStorageUnavailable):
		writeJSON(w, http.StatusServiceUnavailable,
			errorBody{errorDetail{"storage_unavailable", "database unavailable, service is read-only"}})
	case errors.Is(err, domain.ErrDuplicate):
		writeJSON(w, http.StatusConflict, errorBody{errorDetail{"duplicate", unwrapMessage(err)}})
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorBody{errorDetail{"invalid_credentials", "invalid username or password"}})
	default:
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{errorDetail{"internal", "internal server error"}})
	}
}

// badRequest writes a 422 for requests rejected before reaching the service
// layer (missing or malformed body).
func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnprocessableEntity, errorBody{errorDetail{"validation_error", message}})
}

// unwrapMessage strips the "pkg.Type.Method: " call-chain prefixes from a
// wrapped sentinel error, leaving the human-readable tail.
// e.g. "service.TripService.Create: validation error: driverName is required"
// → "driverName is required".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if prefix := domain.ErrValidation.Error() + ": "; strings.Contains(msg, prefix) {
		return msg[strings.LastIndex(msg, prefix)+len(prefix):]
	}
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}

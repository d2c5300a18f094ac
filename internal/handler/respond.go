package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tripweave/backend/internal/domain"
	"github.com/tripweave/backend/internal/middleware"
)

// errorBody is the JSON error envelope shared by every endpoint.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// respondError maps a service error to its HTTP status and JSON body.
//
// The registry-unavailable case is deliberately NOT folded into not-found or
// forbidden: an infrastructure fault must read as "unable to load trip data",
// never as a policy decision, so callers cannot mistake an outage for a
// revoked membership (and the service never fails open either; the resource
// simply does not render).
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrRegistryUnavailable):
		slog.ErrorContext(r.Context(), "participant registry unavailable", "error", err)
		respondJSON(w, http.StatusServiceUnavailable, errorBody{
			Error: errorDetail{Code: "unavailable", Message: "unable to load trip data"},
		})
	case errors.Is(err, domain.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorBody{
			Error: errorDetail{Code: "not_found", Message: "not found"},
		})
	case errors.Is(err, domain.ErrForbidden):
		respondJSON(w, http.StatusForbidden, errorBody{
			Error: errorDetail{Code: "forbidden", Message: "you do not have permission to do this"},
		})
	case errors.Is(err, domain.ErrValidation):
		respondJSON(w, http.StatusUnprocessableEntity, errorBody{
			Error: errorDetail{Code: "validation_error", Message: validationMessage(err)},
		})
	default:
		slog.ErrorContext(r.Context(), "unhandled error", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorBody{
			Error: errorDetail{Code: "internal_error", Message: "internal server error"},
		})
	}
}

// respondRequestError rejects a request before it reaches the service layer
// (malformed body, bad path parameter).
func respondRequestError(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusUnprocessableEntity, errorBody{
		Error: errorDetail{Code: "validation_error", Message: message},
	})
}

// validationMessage extracts the human-readable part from a wrapped
// domain.ErrValidation error.
// e.g. "service.TripService.Create: validation error: name is required" →
// "name is required"
func validationMessage(err error) string {
	msg := err.Error()
	const marker = "validation error: "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}

// callerID returns the authenticated user ID placed in the context by the
// auth middleware. A missing ID means the route was mounted without the
// authenticator (a wiring bug), so the request is rejected with 401.
func callerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := middleware.UserID(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorBody{
			Error: errorDetail{Code: "unauthorized", Message: "authentication required"},
		})
		return uuid.UUID{}, false
	}
	return id, true
}

// pathUUID parses the named chi URL parameter as a UUID.
// On failure it writes a 422 response and returns ok=false.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		respondRequestError(w, "invalid "+name)
		return uuid.UUID{}, false
	}
	return id, true
}

// queryInt parses an optional integer query parameter, returning nil when
// absent or malformed.
func queryInt(r *http.Request, name string) *int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

// decodeBody decodes the JSON request body into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Body == nil {
		respondRequestError(w, "request body is required")
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondRequestError(w, "malformed request body")
		return false
	}
	return true
}

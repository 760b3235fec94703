// Package api contains the HTTP route handlers. Handlers are http.Handler
// closures over server.Server and translate service errors into status
// codes; business logic lives in internal/services.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/hashicorp/go-hclog"

	"github.com/rolodex-hq/rolodex/internal/services"
)

// decodeRequest decodes a JSON request body into v, rejecting unknown
// fields.
func decodeRequest(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("error decoding request body: %w", err)
	}
	return nil
}

// respondJSON writes v as a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, log hclog.Logger, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("error encoding response", "error", err)
	}
}

// messageResponse is the body of informational responses.
type messageResponse struct {
	Message string `json:"message"`
}

// respondMessage writes a {"message": ...} JSON body.
func respondMessage(w http.ResponseWriter, log hclog.Logger, status int, msg string) {
	respondJSON(w, log, status, messageResponse{Message: msg})
}

// statusFromError maps service sentinel errors to HTTP status codes. Unknown
// errors map to 500.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, services.ErrUnauthorized),
		errors.Is(err, services.ErrEmailNotConfirmed):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrInvalidToken):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

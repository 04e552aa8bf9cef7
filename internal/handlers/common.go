package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"staybnb-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// ErrorResponse is the error body shared by all endpoints
type ErrorResponse struct {
	Message    string            `json:"message"`
	StatusCode int               `json:"statusCode"`
	Errors     map[string]string `json:"errors,omitempty"`
}

// messageResponse is the body returned by successful deletes
type messageResponse struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	respondJSON(w, statusCode, ErrorResponse{Message: message, StatusCode: statusCode})
}

// respondValidationErrors sends a 400 carrying the full field-error map
func respondValidationErrors(w http.ResponseWriter, fieldErrors map[string]string) {
	respondJSON(w, http.StatusBadRequest, ErrorResponse{
		Message:    "Validation error",
		StatusCode: http.StatusBadRequest,
		Errors:     fieldErrors,
	})
}

// respondServiceError converts a service error to its HTTP response.
// Unexpected errors become a logged 500.
func respondServiceError(w http.ResponseWriter, err error) {
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		respondError(w, svcErr.Message, svcErr.StatusCode)
		return
	}

	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		respondValidationErrors(w, validationErr.Errors)
		return
	}

	log.Error().Err(err).Msg("Unexpected error")
	respondError(w, "Internal server error", http.StatusInternalServerError)
}

// decodeBody decodes a JSON request body into dst, responding with a 400
// when the body is malformed
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

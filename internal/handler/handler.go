// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/checkfit/checkfit/internal/handler/dto"
	"github.com/checkfit/checkfit/internal/service"
)

// Handler wraps application dependencies for HTTP handlers.
type Handler struct{}

// New creates a new Handler instance.
func New() *Handler {
	return &Handler{}
}

// Hello is a simple hello endpoint for testing.
// GET /
func (h *Handler) Hello(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"message": "Hello from CheckFit!",
		"version": "0.1.0",
	}
	writeJSON(w, http.StatusOK, response)
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "resource not found")
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log error in production, for now just ignore
		_ = err
	}
}

// writeError writes a generic error response body.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, dto.ErrorResponse{Message: message})
}

// writeDomainError maps domain errors to their fixed status codes.
// Anything unrecognized becomes a 500 with no detail leaked.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrResourceNotFound):
		writeError(w, http.StatusNotFound, "Resource not found.")
	case errors.Is(err, service.ErrUserAlreadyExists):
		writeError(w, http.StatusConflict, "E-mail already exists.")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusBadRequest, "Invalid credentials.")
	case errors.Is(err, service.ErrMaxDistance):
		writeError(w, http.StatusBadRequest, "Max distance reached.")
	case errors.Is(err, service.ErrMaxNumberOfCheckIns):
		writeError(w, http.StatusBadRequest, "Max number of check-ins reached.")
	case errors.Is(err, service.ErrLateCheckInValidation):
		writeError(w, http.StatusBadRequest, "The check-in can only be validated until 20 minutes of its creation.")
	case errors.Is(err, service.ErrInvalidCoordinates),
		errors.Is(err, service.ErrMissingRequiredField):
		writeError(w, http.StatusBadRequest, "Validation error.")
	default:
		writeError(w, http.StatusInternalServerError, "Internal server error.")
	}
}

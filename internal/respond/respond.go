// Package respond writes JSON bodies for handlers and middleware.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrMessageInternal is the generic message for 500 responses. Do not expose internal details to clients.
const ErrMessageInternal = "internal server error"

// ErrorResponse defines the standard error payload.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// MessageResponse is the body of responses that only confirm an action.
type MessageResponse struct {
	Message string `json:"message"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encode response", "error", err)
	}
}

// Message writes {"message": msg}.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, MessageResponse{Message: msg})
}

// Error sends a JSON error response with a single "error" field.
func Error(w http.ResponseWriter, message string, status int) {
	JSON(w, status, ErrorResponse{Error: message})
}

// ValidationError sends "error" and optional "fields" for field-level details.
// status is typically http.StatusBadRequest (400).
func ValidationError(w http.ResponseWriter, message string, fields map[string]string, status int) {
	JSON(w, status, ErrorResponse{Error: message, Fields: fields})
}

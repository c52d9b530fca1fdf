// Package response writes JSON HTTP responses.
package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// encodeFailedJSON is written when a payload cannot be marshaled.
const encodeFailedJSON = `{"error":"failed to encode response"}`

// ErrorResponse is the error body: {"error": "<message>"}.
type ErrorResponse struct {
	Error string `json:"error"`
}

// JSON marshals data before touching the ResponseWriter so an encoding failure
// still produces a 500 instead of a truncated success response.
func JSON(w http.ResponseWriter, statusCode int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		slog.Error("Failed to encode response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(encodeFailedJSON))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(append(body, '\n')); err != nil {
		slog.Error("Failed to write response", "error", err)
	}
}

// OK sends a 200 OK response with JSON data.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Created sends a 201 Created response with JSON data.
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

// Error sends an error response with the given status.
func Error(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, ErrorResponse{Error: message})
}

// BadRequest sends a 400 Bad Request error.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

// NotFound sends a 404 Not Found error.
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}

// InternalError sends a 500 Internal Server Error with a caller-chosen message.
// The underlying error is always logged with request context.
func InternalError(w http.ResponseWriter, r *http.Request, err error, message string) {
	if err != nil {
		slog.ErrorContext(r.Context(), "Internal server error",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
	}
	Error(w, http.StatusInternalServerError, message)
}

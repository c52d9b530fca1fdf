// Package handler adapts HTTP requests to todo service calls.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rezkam/todo-api/internal/application/todo"
)

// Messages returned to clients. They are part of the public API.
const (
	msgTitleRequired   = "Title is required and cannot be empty"
	msgInvalidID       = "Invalid ID format"
	msgInvalidJSON     = "Invalid JSON body"
	msgNotFoundUpdate  = "Cannot find todo with ID %s to update"
	msgNotFoundDelete  = "Cannot find todo with ID %s to delete"
	msgUpdateFailed    = "Cannot update now"
	msgInternalError   = "Internal server error"
	msgDeleteSucceeded = "Todo deleted successfully"
)

// TodoHandler serves the /todos resource.
type TodoHandler struct {
	todoService *todo.Service
}

// NewTodoHandler creates a new HTTP API handler.
func NewTodoHandler(todoService *todo.Service) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

// NewRouter mounts the todo routes on a fresh chi router.
// The result is meant to be mounted under /api.
func NewRouter(todoService *todo.Service) http.Handler {
	h := NewTodoHandler(todoService)

	r := chi.NewRouter()
	r.Get("/todos", h.ListTodos)
	r.Post("/todos", h.CreateTodo)
	r.Put("/todos/{id}", h.UpdateTodo)
	r.Delete("/todos/{id}", h.DeleteTodo)

	return r
}

// decodeBody decodes a JSON request body into dst.
// An empty body is treated as an empty object.
func decodeBody(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// storageMessage returns the database's own text for err, without the
// service and repository context added while it propagated.
func storageMessage(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Message
	}
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}

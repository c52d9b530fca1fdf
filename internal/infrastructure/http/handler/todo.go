package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rezkam/todo-api/internal/domain"
	"github.com/rezkam/todo-api/internal/infrastructure/http/response"
)

// TodoRequest is the body of POST and PUT requests.
// Absent and null fields decode to nil.
type TodoRequest struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

// DeleteResponse confirms a deletion. DeletedID echoes the path segment.
type DeleteResponse struct {
	Message   string `json:"message"`
	DeletedID string `json:"deletedId"`
}

// ListTodos handles GET /api/todos.
// The database error message is returned to the caller.
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := h.todoService.ListTodos(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to list todos", "error", err)
		response.Error(w, http.StatusInternalServerError, storageMessage(err))
		return
	}
	if todos == nil {
		todos = []*domain.Todo{}
	}

	response.OK(w, todos)
}

// CreateTodo handles POST /api/todos.
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	var req TodoRequest
	if err := decodeBody(r, &req); err != nil {
		response.BadRequest(w, msgInvalidJSON)
		return
	}

	created, err := h.todoService.CreateTodo(r.Context(), req.Title, req.Completed)
	if err != nil {
		if errors.Is(err, domain.ErrTitleRequired) {
			response.BadRequest(w, msgTitleRequired)
			return
		}
		slog.ErrorContext(r.Context(), "failed to create todo", "error", err)
		response.Error(w, http.StatusInternalServerError, storageMessage(err))
		return
	}

	slog.InfoContext(r.Context(), "todo created", "todo_id", created.ID)
	response.Created(w, created)
}

// UpdateTodo handles PUT /api/todos/{id}.
// Failure detail is logged and replaced with a fixed message.
func (h *TodoHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	rawID := chi.URLParam(r, "id")
	id, err := domain.ParseID(rawID)
	if err != nil {
		response.BadRequest(w, msgInvalidID)
		return
	}

	var req TodoRequest
	if err := decodeBody(r, &req); err != nil {
		response.BadRequest(w, msgInvalidJSON)
		return
	}

	updated, err := h.todoService.UpdateTodo(r.Context(), id, req.Title, req.Completed)
	switch {
	case err == nil:
		response.OK(w, updated)
	case errors.Is(err, domain.ErrTitleRequired):
		response.BadRequest(w, msgTitleRequired)
	case errors.Is(err, domain.ErrTodoNotFound):
		response.NotFound(w, fmt.Sprintf(msgNotFoundUpdate, rawID))
	default:
		response.InternalError(w, r, err, msgUpdateFailed)
	}
}

// DeleteTodo handles DELETE /api/todos/{id}.
// Failure detail is logged and replaced with a fixed message.
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	rawID := chi.URLParam(r, "id")
	id, err := domain.ParseID(rawID)
	if err != nil {
		response.BadRequest(w, msgInvalidID)
		return
	}

	err = h.todoService.DeleteTodo(r.Context(), id)
	switch {
	case err == nil:
		slog.InfoContext(r.Context(), "todo deleted", "todo_id", id)
		response.OK(w, DeleteResponse{Message: msgDeleteSucceeded, DeletedID: rawID})
	case errors.Is(err, domain.ErrTodoNotFound):
		response.NotFound(w, fmt.Sprintf(msgNotFoundDelete, rawID))
	default:
		response.InternalError(w, r, err, msgInternalError)
	}
}

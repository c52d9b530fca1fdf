package todo

import (
	"context"

	"github.com/rezkam/todo-api/internal/domain"
)

// Repository defines storage operations for todo management.
// Each method executes exactly one statement; implementations issue no explicit transactions.
type Repository interface {
	// ListTodos returns all todos ordered by ascending ID.
	// Returns an empty, non-nil slice when no rows exist.
	ListTodos(ctx context.Context) ([]*domain.Todo, error)

	// CreateTodo inserts a todo and returns it with the generated ID.
	CreateTodo(ctx context.Context, title string, completed bool) (*domain.Todo, error)

	// UpdateTodo applies a coalescing update and returns the stored row.
	// Returns domain.ErrTodoNotFound if the todo doesn't exist.
	UpdateTodo(ctx context.Context, params domain.UpdateTodoParams) (*domain.Todo, error)

	// DeleteTodo removes a todo.
	// Returns domain.ErrTodoNotFound if the todo doesn't exist.
	DeleteTodo(ctx context.Context, id int64) error
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rezkam/todo-api/internal/domain"
)

const (
	listTodosSQL = `SELECT id, title, completed FROM todos ORDER BY id`

	createTodoSQL = `INSERT INTO todos (title, completed) VALUES ($1, $2)
RETURNING id, title, completed`

	updateTodoSQL = `UPDATE todos
SET title = COALESCE($1, title),
    completed = COALESCE($2, completed)
WHERE id = $3
RETURNING id, title, completed`

	deleteTodoSQL = `DELETE FROM todos WHERE id = $1`
)

// checkRowsAffected validates that a DELETE affected a row.
// Returns domain.ErrTodoNotFound if rowsAffected == 0.
func checkRowsAffected(rowsAffected int64, id int64) error {
	if rowsAffected == 0 {
		return fmt.Errorf("%w: todo %d", domain.ErrTodoNotFound, id)
	}
	return nil
}

func scanTodo(row pgx.CollectableRow) (*domain.Todo, error) {
	var t domain.Todo
	if err := row.Scan(&t.ID, &t.Title, &t.Completed); err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTodos returns all todos ordered by ascending ID.
func (s *Store) ListTodos(ctx context.Context) ([]*domain.Todo, error) {
	rows, err := s.pool.Query(ctx, listTodosSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query todos: %w", err)
	}

	todos, err := pgx.CollectRows(rows, scanTodo)
	if err != nil {
		return nil, fmt.Errorf("failed to scan todos: %w", err)
	}
	if todos == nil {
		todos = []*domain.Todo{}
	}

	return todos, nil
}

// CreateTodo inserts a todo and returns the stored row.
func (s *Store) CreateTodo(ctx context.Context, title string, completed bool) (*domain.Todo, error) {
	var t domain.Todo
	err := s.pool.QueryRow(ctx, createTodoSQL, title, completed).Scan(&t.ID, &t.Title, &t.Completed)
	if err != nil {
		return nil, fmt.Errorf("failed to insert todo: %w", err)
	}
	return &t, nil
}

// UpdateTodo applies a coalescing update: NULL parameters keep the stored column.
func (s *Store) UpdateTodo(ctx context.Context, params domain.UpdateTodoParams) (*domain.Todo, error) {
	var title *string
	if params.Title != nil {
		v := params.Title.String()
		title = &v
	}

	var t domain.Todo
	err := s.pool.QueryRow(ctx, updateTodoSQL, title, params.Completed, params.ID).
		Scan(&t.ID, &t.Title, &t.Completed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: todo %d", domain.ErrTodoNotFound, params.ID)
		}
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}
	return &t, nil
}

// DeleteTodo removes a todo by ID.
func (s *Store) DeleteTodo(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, deleteTodoSQL, id)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return checkRowsAffected(tag.RowsAffected(), id)
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rezkam/todo-api/internal/domain"
)

const (
	listTodosSQL = `SELECT id, title, completed FROM todos ORDER BY id`

	createTodoSQL = `INSERT INTO todos (title, completed) VALUES (?, ?)
RETURNING id, title, completed`

	updateTodoSQL = `UPDATE todos
SET title = COALESCE(?, title),
    completed = COALESCE(?, completed)
WHERE id = ?
RETURNING id, title, completed`

	deleteTodoSQL = `DELETE FROM todos WHERE id = ?`
)

type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(row scanner) (*domain.Todo, error) {
	var t domain.Todo
	if err := row.Scan(&t.ID, &t.Title, &t.Completed); err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTodos returns all todos ordered by ascending ID.
func (s *Store) ListTodos(ctx context.Context) ([]*domain.Todo, error) {
	rows, err := s.db.QueryContext(ctx, listTodosSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query todos: %w", err)
	}
	defer rows.Close()

	todos := []*domain.Todo{}
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate todos: %w", err)
	}

	return todos, nil
}

// CreateTodo inserts a todo and returns the stored row.
func (s *Store) CreateTodo(ctx context.Context, title string, completed bool) (*domain.Todo, error) {
	t, err := scanTodo(s.db.QueryRowContext(ctx, createTodoSQL, title, completed))
	if err != nil {
		return nil, fmt.Errorf("failed to insert todo: %w", err)
	}
	return t, nil
}

// UpdateTodo applies a coalescing update: NULL parameters keep the stored column.
func (s *Store) UpdateTodo(ctx context.Context, params domain.UpdateTodoParams) (*domain.Todo, error) {
	var title sql.NullString
	if params.Title != nil {
		title = sql.NullString{String: params.Title.String(), Valid: true}
	}
	var completed sql.NullBool
	if params.Completed != nil {
		completed = sql.NullBool{Bool: *params.Completed, Valid: true}
	}

	t, err := scanTodo(s.db.QueryRowContext(ctx, updateTodoSQL, title, completed, params.ID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: todo %d", domain.ErrTodoNotFound, params.ID)
		}
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}
	return t, nil
}

// DeleteTodo removes a todo by ID.
func (s *Store) DeleteTodo(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, deleteTodoSQL, id)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: todo %d", domain.ErrTodoNotFound, id)
	}
	return nil
}

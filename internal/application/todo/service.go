package todo

import (
	"context"
	"fmt"

	"github.com/rezkam/todo-api/internal/domain"
	"github.com/rezkam/todo-api/internal/ptr"
)

// Service provides business logic for todo management.
// It holds no state between calls; the repository is the only source of truth.
type Service struct {
	repo Repository
}

// NewService creates a new todo service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListTodos returns every todo ordered by ascending ID.
func (s *Service) ListTodos(ctx context.Context) ([]*domain.Todo, error) {
	todos, err := s.repo.ListTodos(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

// CreateTodo validates the title and stores a new todo.
// A nil completed flag defaults to false.
func (s *Service) CreateTodo(ctx context.Context, title *string, completed *bool) (*domain.Todo, error) {
	if title == nil {
		return nil, domain.ErrTitleRequired
	}
	t, err := domain.NewTitle(*title)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.CreateTodo(ctx, t.String(), ptr.Deref(completed, false))
	if err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}
	return created, nil
}

// UpdateTodo merges the provided fields into the stored todo.
// Nil fields keep their stored values. A provided title must not be blank.
func (s *Service) UpdateTodo(ctx context.Context, id int64, title *string, completed *bool) (*domain.Todo, error) {
	params := domain.UpdateTodoParams{
		ID:        id,
		Completed: completed,
	}

	if title != nil {
		t, err := domain.NewTitle(*title)
		if err != nil {
			return nil, err
		}
		params.Title = &t
	}

	updated, err := s.repo.UpdateTodo(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to update todo %d: %w", id, err)
	}
	return updated, nil
}

// DeleteTodo removes the todo with the given ID.
func (s *Service) DeleteTodo(ctx context.Context, id int64) error {
	if err := s.repo.DeleteTodo(ctx, id); err != nil {
		return fmt.Errorf("failed to delete todo %d: %w", id, err)
	}
	return nil
}

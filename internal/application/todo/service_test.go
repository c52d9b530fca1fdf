package todo

import (
	"context"
	"errors"
	"testing"

	"github.com/rezkam/todo-api/internal/domain"
	"github.com/rezkam/todo-api/internal/ptr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRepo records calls so tests can assert that validation happens before storage access.
type mockRepo struct {
	calls int

	createdTitle     string
	createdCompleted bool
	updateParams     domain.UpdateTodoParams
	deletedID        int64

	todos []*domain.Todo
	todo  *domain.Todo
	err   error
}

func (m *mockRepo) ListTodos(ctx context.Context) ([]*domain.Todo, error) {
	m.calls++
	return m.todos, m.err
}

func (m *mockRepo) CreateTodo(ctx context.Context, title string, completed bool) (*domain.Todo, error) {
	m.calls++
	m.createdTitle = title
	m.createdCompleted = completed
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Todo{ID: 1, Title: title, Completed: completed}, nil
}

func (m *mockRepo) UpdateTodo(ctx context.Context, params domain.UpdateTodoParams) (*domain.Todo, error) {
	m.calls++
	m.updateParams = params
	return m.todo, m.err
}

func (m *mockRepo) DeleteTodo(ctx context.Context, id int64) error {
	m.calls++
	m.deletedID = id
	return m.err
}

func TestService_CreateTodo(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults completed to false", func(t *testing.T) {
		repo := &mockRepo{}
		svc := NewService(repo)

		todo, err := svc.CreateTodo(ctx, ptr.To("buy milk"), nil)
		require.NoError(t, err)

		assert.Equal(t, "buy milk", todo.Title)
		assert.False(t, todo.Completed)
		assert.Equal(t, "buy milk", repo.createdTitle)
		assert.False(t, repo.createdCompleted)
	})

	t.Run("passes completed through", func(t *testing.T) {
		repo := &mockRepo{}
		svc := NewService(repo)

		todo, err := svc.CreateTodo(ctx, ptr.To("walk dog"), ptr.To(true))
		require.NoError(t, err)
		assert.True(t, todo.Completed)
	})

	t.Run("stores title as given", func(t *testing.T) {
		repo := &mockRepo{}
		svc := NewService(repo)

		_, err := svc.CreateTodo(ctx, ptr.To("  padded  "), nil)
		require.NoError(t, err)
		assert.Equal(t, "  padded  ", repo.createdTitle)
	})

	invalid := map[string]*string{
		"absent":     nil,
		"empty":      ptr.To(""),
		"whitespace": ptr.To("   \t"),
	}
	for name, title := range invalid {
		t.Run("rejects "+name+" title without storage access", func(t *testing.T) {
			repo := &mockRepo{}
			svc := NewService(repo)

			_, err := svc.CreateTodo(ctx, title, nil)
			assert.ErrorIs(t, err, domain.ErrTitleRequired)
			assert.Zero(t, repo.calls)
		})
	}

	t.Run("wraps storage errors", func(t *testing.T) {
		dbErr := errors.New("connection refused")
		svc := NewService(&mockRepo{err: dbErr})

		_, err := svc.CreateTodo(ctx, ptr.To("x"), nil)
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestService_ListTodos(t *testing.T) {
	ctx := context.Background()

	t.Run("returns repository rows", func(t *testing.T) {
		rows := []*domain.Todo{{ID: 1, Title: "a"}, {ID: 2, Title: "b"}}
		svc := NewService(&mockRepo{todos: rows})

		todos, err := svc.ListTodos(ctx)
		require.NoError(t, err)
		assert.Equal(t, rows, todos)
	})

	t.Run("wraps storage errors", func(t *testing.T) {
		dbErr := errors.New("relation \"todos\" does not exist")
		svc := NewService(&mockRepo{err: dbErr})

		_, err := svc.ListTodos(ctx)
		assert.ErrorIs(t, err, dbErr)
		assert.Contains(t, err.Error(), dbErr.Error())
	})
}

func TestService_UpdateTodo(t *testing.T) {
	ctx := context.Background()

	t.Run("only completed", func(t *testing.T) {
		repo := &mockRepo{todo: &domain.Todo{ID: 3, Title: "keep", Completed: true}}
		svc := NewService(repo)

		todo, err := svc.UpdateTodo(ctx, 3, nil, ptr.To(true))
		require.NoError(t, err)

		assert.Equal(t, int64(3), repo.updateParams.ID)
		assert.Nil(t, repo.updateParams.Title)
		require.NotNil(t, repo.updateParams.Completed)
		assert.True(t, *repo.updateParams.Completed)
		assert.Equal(t, "keep", todo.Title)
	})

	t.Run("only title", func(t *testing.T) {
		repo := &mockRepo{todo: &domain.Todo{ID: 3, Title: "renamed"}}
		svc := NewService(repo)

		_, err := svc.UpdateTodo(ctx, 3, ptr.To("renamed"), nil)
		require.NoError(t, err)

		require.NotNil(t, repo.updateParams.Title)
		assert.Equal(t, "renamed", repo.updateParams.Title.String())
		assert.Nil(t, repo.updateParams.Completed)
	})

	t.Run("rejects blank title", func(t *testing.T) {
		repo := &mockRepo{}
		svc := NewService(repo)

		_, err := svc.UpdateTodo(ctx, 3, ptr.To("  "), nil)
		assert.ErrorIs(t, err, domain.ErrTitleRequired)
		assert.Zero(t, repo.calls)
	})

	t.Run("propagates not found", func(t *testing.T) {
		svc := NewService(&mockRepo{err: domain.ErrTodoNotFound})

		_, err := svc.UpdateTodo(ctx, 99, nil, ptr.To(false))
		assert.ErrorIs(t, err, domain.ErrTodoNotFound)
	})
}

func TestService_DeleteTodo(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes by id", func(t *testing.T) {
		repo := &mockRepo{}
		svc := NewService(repo)

		require.NoError(t, svc.DeleteTodo(ctx, 7))
		assert.Equal(t, int64(7), repo.deletedID)
	})

	t.Run("propagates not found", func(t *testing.T) {
		svc := NewService(&mockRepo{err: domain.ErrTodoNotFound})

		err := svc.DeleteTodo(ctx, 7)
		assert.ErrorIs(t, err, domain.ErrTodoNotFound)
	})
}

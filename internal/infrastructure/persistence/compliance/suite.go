// Package compliance holds the behavioural contract every todo.Repository must satisfy.
package compliance

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/rezkam/todo-api/internal/application/todo"
	"github.com/rezkam/todo-api/internal/domain"
	"github.com/rezkam/todo-api/internal/ptr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTitle(t *testing.T, s string) *domain.Title {
	t.Helper()
	title, err := domain.NewTitle(s)
	require.NoError(t, err)
	return &title
}

// RunRepositoryComplianceTest runs the standard repository checks.
// setup must return an empty repository; it is called once per subtest.
func RunRepositoryComplianceTest(t *testing.T, setup func(t *testing.T) todo.Repository) {
	t.Run("ListEmpty", func(t *testing.T) {
		repo := setup(t)

		todos, err := repo.ListTodos(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, todos)
		assert.Empty(t, todos)
	})

	t.Run("CreateAssignsID", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		created, err := repo.CreateTodo(ctx, "buy milk", false)
		require.NoError(t, err)
		assert.Positive(t, created.ID)
		assert.Equal(t, "buy milk", created.Title)
		assert.False(t, created.Completed)

		second, err := repo.CreateTodo(ctx, "walk dog", true)
		require.NoError(t, err)
		assert.Greater(t, second.ID, created.ID)
		assert.True(t, second.Completed)
	})

	t.Run("ListOrderedByID", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		var ids []int64
		for i := range 5 {
			created, err := repo.CreateTodo(ctx, fmt.Sprintf("task %d", i), i%2 == 0)
			require.NoError(t, err)
			ids = append(ids, created.ID)
		}

		todos, err := repo.ListTodos(ctx)
		require.NoError(t, err)
		require.Len(t, todos, len(ids))
		for i, got := range todos {
			assert.Equal(t, ids[i], got.ID)
			assert.Equal(t, fmt.Sprintf("task %d", i), got.Title)
		}
	})

	t.Run("UpdateCompletedKeepsTitle", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		created, err := repo.CreateTodo(ctx, "buy milk", false)
		require.NoError(t, err)

		updated, err := repo.UpdateTodo(ctx, domain.UpdateTodoParams{
			ID:        created.ID,
			Completed: ptr.To(true),
		})
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "buy milk", updated.Title)
		assert.True(t, updated.Completed)
	})

	t.Run("UpdateTitleKeepsCompleted", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		created, err := repo.CreateTodo(ctx, "draft", true)
		require.NoError(t, err)

		updated, err := repo.UpdateTodo(ctx, domain.UpdateTodoParams{
			ID:    created.ID,
			Title: mustTitle(t, "final"),
		})
		require.NoError(t, err)
		assert.Equal(t, "final", updated.Title)
		assert.True(t, updated.Completed)

		todos, err := repo.ListTodos(ctx)
		require.NoError(t, err)
		require.Len(t, todos, 1)
		assert.Equal(t, *updated, *todos[0])
	})

	t.Run("UpdateNothingIsNoop", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		created, err := repo.CreateTodo(ctx, "same", false)
		require.NoError(t, err)

		updated, err := repo.UpdateTodo(ctx, domain.UpdateTodoParams{ID: created.ID})
		require.NoError(t, err)
		assert.Equal(t, *created, *updated)
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		repo := setup(t)

		_, err := repo.UpdateTodo(context.Background(), domain.UpdateTodoParams{
			ID:        4242,
			Completed: ptr.To(true),
		})
		assert.ErrorIs(t, err, domain.ErrTodoNotFound)
	})

	t.Run("DeleteRemovesRow", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		keep, err := repo.CreateTodo(ctx, "keep", false)
		require.NoError(t, err)
		drop, err := repo.CreateTodo(ctx, "drop", false)
		require.NoError(t, err)

		require.NoError(t, repo.DeleteTodo(ctx, drop.ID))

		todos, err := repo.ListTodos(ctx)
		require.NoError(t, err)
		require.Len(t, todos, 1)
		assert.Equal(t, keep.ID, todos[0].ID)

		err = repo.DeleteTodo(ctx, drop.ID)
		assert.ErrorIs(t, err, domain.ErrTodoNotFound)
	})

	t.Run("DeleteMissing", func(t *testing.T) {
		repo := setup(t)

		err := repo.DeleteTodo(context.Background(), 4242)
		assert.ErrorIs(t, err, domain.ErrTodoNotFound)
	})

	t.Run("ConcurrentCreatesGetUniqueIDs", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		const workers = 8
		ids := make(chan int64, workers)
		var wg sync.WaitGroup
		for i := range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				created, err := repo.CreateTodo(ctx, fmt.Sprintf("parallel %d", i), false)
				if assert.NoError(t, err) {
					ids <- created.ID
				}
			}()
		}
		wg.Wait()
		close(ids)

		seen := make(map[int64]bool)
		for id := range ids {
			assert.False(t, seen[id], "duplicate id %d", id)
			seen[id] = true
		}
		assert.Len(t, seen, workers)
	})
}

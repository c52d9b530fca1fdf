package postgres_test

import (
	"context"
	"testing"

	"github.com/rezkam/todo-api/internal/application/todo"
	"github.com/rezkam/todo-api/internal/config"
	"github.com/rezkam/todo-api/internal/infrastructure/persistence/compliance"
	"github.com/rezkam/todo-api/internal/infrastructure/persistence/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore connects to TEST_DB_DSN, applies the schema and empties the table.
func newTestStore(t *testing.T) *postgres.Store {
	t.Helper()

	cfg, err := config.LoadTestConfig()
	if err != nil {
		t.Skipf("Skipping PostgreSQL integration test: %v", err)
	}

	ctx := context.Background()
	store, err := postgres.NewStoreWithConfig(ctx, postgres.DBConfig{
		DSN:         cfg.DSN,
		MaxConns:    4,
		AutoMigrate: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	_, err = store.Pool().Exec(ctx, "TRUNCATE TABLE todos RESTART IDENTITY")
	require.NoError(t, err)

	return store
}

func TestStore_Compliance(t *testing.T) {
	compliance.RunRepositoryComplianceTest(t, func(t *testing.T) todo.Repository {
		return newTestStore(t)
	})
}

func TestStore_BlankTitleRejectedBySchema(t *testing.T) {
	store := newTestStore(t)

	_, err := store.CreateTodo(context.Background(), "   ", false)
	assert.Error(t, err)
}

func TestNewPostgresStore_InvalidDSN(t *testing.T) {
	_, err := postgres.NewPostgresStore(context.Background(), "postgres://%zz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse connection string")
}

package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rezkam/todo-api/internal/application/todo"
)

// Store provides the PostgreSQL implementation of todo.Repository.
// Every method runs a single statement on a pooled connection; pgxpool releases
// the connection when the statement's rows are closed or scanned.
type Store struct {
	pool *pgxpool.Pool
}

var _ todo.Repository = (*Store)(nil)

// NewStore creates a new PostgreSQL store with the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Pool returns the underlying connection pool.
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

// Close closes the database connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// Package sqlite implements todo.Repository on an embedded SQLite database.
// It serves local development and in-process tests that have no PostgreSQL server.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver

	"github.com/rezkam/todo-api/internal/application/todo"
	"github.com/rezkam/todo-api/internal/infrastructure/persistence/sqlite/migrations"
)

// Config holds SQLite store configuration.
type Config struct {
	Path        string // Database file path
	AutoMigrate bool   // Create the schema before serving
}

// Store provides the SQLite implementation of todo.Repository.
type Store struct {
	db *sql.DB
}

var _ todo.Repository = (*Store)(nil)

// NewStore opens the database file and optionally applies the embedded schema.
// SQLite serializes writers, so once the schema is in place the pool is limited
// to one connection.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	db, err := sql.Open("sqlite", dataSourceName(cfg.Path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if cfg.AutoMigrate {
		if err := runMigrations(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	db.SetMaxOpenConns(1)

	return &Store{db: db}, nil
}

// dataSourceName builds a file: URI for path. The path is percent-encoded so
// '?' and '#' in a file name are not read as the query or fragment.
func dataSourceName(path string) string {
	u := url.URL{
		Scheme:   "file",
		Opaque:   (&url.URL{Path: path}).EscapedPath(),
		RawQuery: "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)",
	}
	return u.String()
}

// DB returns the underlying database handle.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("failed to create goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	for _, r := range results {
		slog.DebugContext(ctx, "migration applied",
			"version", r.Source.Version,
			"duration_ms", r.Duration.Milliseconds())
	}

	return nil
}

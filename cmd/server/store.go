package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/rezkam/todo-api/internal/application/todo"
	"github.com/rezkam/todo-api/internal/config"
	"github.com/rezkam/todo-api/internal/infrastructure/persistence/postgres"
	"github.com/rezkam/todo-api/internal/infrastructure/persistence/sqlite"
)

// store is what the server needs from a persistence backend.
type store interface {
	todo.Repository
	io.Closer
}

// openStore connects the backend selected by cfg.Driver.
func openStore(ctx context.Context, cfg *config.DatabaseConfig) (store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		dsn := cfg.DSN()
		s, err := postgres.NewStoreWithConfig(ctx, postgres.DBConfig{
			DSN:             dsn,
			MaxConns:        cfg.MaxConns,
			MinConns:        cfg.MinConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.ConnMaxIdleTime,
			AutoMigrate:     cfg.AutoMigrate,
		})
		if err != nil {
			return nil, err
		}
		slog.InfoContext(ctx, "storage initialized", "driver", cfg.Driver, "url", maskPassword(dsn))
		return s, nil

	case config.DriverSQLite:
		s, err := sqlite.NewStore(ctx, sqlite.Config{
			Path:        cfg.SQLitePath,
			AutoMigrate: cfg.AutoMigrate,
		})
		if err != nil {
			return nil, err
		}
		slog.InfoContext(ctx, "storage initialized", "driver", cfg.Driver, "path", cfg.SQLitePath)
		return s, nil

	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnsupportedDriver, cfg.Driver)
	}
}

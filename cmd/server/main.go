package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rezkam/todo-api/internal/application/todo"
	"github.com/rezkam/todo-api/internal/config"
	httpserver "github.com/rezkam/todo-api/internal/infrastructure/http"
	"github.com/rezkam/todo-api/internal/infrastructure/http/handler"
	"github.com/rezkam/todo-api/internal/infrastructure/observability"
)

func main() {
	if err := run(); err != nil {
		// slog may not be configured yet if config loading failed.
		fmt.Fprintf(os.Stderr, "failed to run: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Root context, cancelled on SIGINT/SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	providers, err := observability.Setup(ctx, observability.Config{
		Enabled:     cfg.Observability.OTelEnabled,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		return fmt.Errorf("failed to init observability: %w", err)
	}

	slog.InfoContext(ctx, "starting todo service", "env", cfg.Env, "driver", cfg.Database.Driver)

	store, err := openStore(ctx, &cfg.Database)
	if err != nil {
		flushTelemetry(providers)
		return fmt.Errorf("failed to create store: %w", err)
	}

	cleanup := newCleanup(store, providers, cfg.ShutdownTimeout)
	defer cleanup()

	api := handler.NewRouter(todo.NewService(store))

	var serviceName string
	if cfg.Observability.OTelEnabled {
		serviceName = cfg.Observability.ServiceName
	}
	server := httpserver.NewAPIServer(api, httpserver.ServerConfig{
		Host:              cfg.HTTP.Host,
		Port:              cfg.HTTP.Port,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		MaxBodyBytes:      cfg.HTTP.MaxBodyBytes,
		ServiceName:       serviceName,
	})

	if cfg.IsTest() {
		slog.InfoContext(ctx, "test environment, not listening", "addr", server.Addr())
		return nil
	}

	errResult := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errResult <- fmt.Errorf("failed to serve HTTP: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.InfoContext(ctx, "shutting down")

		shutdownCtx, cancel := newShutdownContext(cfg.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.WarnContext(shutdownCtx, "HTTP server shutdown timed out", "error", err)
		}
		return nil
	case err := <-errResult:
		return err
	}
}

// newShutdownContext returns a fresh timeout context. The root context is
// already cancelled when shutdown begins.
func newShutdownContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func flushTelemetry(providers *observability.Providers) {
	ctx, cancel := newShutdownContext(5 * time.Second)
	defer cancel()
	if err := providers.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to flush telemetry: %v\n", err)
	}
}

// maskPassword masks the password in a connection string for logging.
func maskPassword(connStr string) string {
	u, err := url.Parse(connStr)
	if err != nil {
		return "[REDACTED]"
	}
	if u.User != nil {
		if _, hasPassword := u.User.Password(); hasPassword {
			u.User = url.UserPassword(u.User.Username(), "xxxxxx")
		}
	}
	return u.String()
}

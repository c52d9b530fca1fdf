package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
)

// shutdowner abstracts the telemetry providers so tests can verify cleanup
// order without real exporters.
type shutdowner interface {
	Shutdown(context.Context) error
}

// newCleanup returns the shutdown hook: close the store, then flush telemetry
// so the store's final log lines are exported.
func newCleanup(store io.Closer, telemetry shutdowner, timeout time.Duration) func() {
	return func() {
		if store != nil {
			if err := store.Close(); err != nil {
				slog.Error("failed to close store", slog.String("error", err.Error()))
			} else {
				slog.Info("store closed")
			}
		}

		if telemetry != nil {
			ctx, cancel := newShutdownContext(timeout)
			defer cancel()
			if err := telemetry.Shutdown(ctx); err != nil {
				// The log pipeline may already be gone.
				fmt.Fprintf(os.Stderr, "failed to shut down telemetry: %v\n", err)
			}
		}
	}
}

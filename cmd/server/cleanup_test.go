package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCleanup_ClosesStoreBeforeFlushingTelemetry(t *testing.T) {
	var callOrder []string

	telemetry := &fakeTelemetry{calls: &callOrder}
	store := &fakeStore{calls: &callOrder}

	cleanup := newCleanup(store, telemetry, time.Second)
	cleanup()

	require.Equal(t, []string{"storeClose", "telemetryShutdown"}, callOrder)

	deadline, ok := telemetry.receivedCtx.Deadline()
	require.True(t, ok, "telemetry shutdown must be bounded")
	assert.WithinDuration(t, time.Now().Add(time.Second), deadline, time.Second)
}

func TestNewCleanup_StoreErrorStillFlushesTelemetry(t *testing.T) {
	var callOrder []string

	telemetry := &fakeTelemetry{calls: &callOrder}
	store := &fakeStore{calls: &callOrder, err: errors.New("close failed")}

	newCleanup(store, telemetry, time.Second)()

	assert.Equal(t, []string{"storeClose", "telemetryShutdown"}, callOrder)
}

func TestNewCleanup_NilDependencies(t *testing.T) {
	assert.NotPanics(t, newCleanup(nil, nil, time.Second))
}

type fakeTelemetry struct {
	calls       *[]string
	receivedCtx context.Context
}

func (f *fakeTelemetry) Shutdown(ctx context.Context) error {
	f.receivedCtx = ctx
	*f.calls = append(*f.calls, "telemetryShutdown")
	return nil
}

type fakeStore struct {
	calls *[]string
	err   error
}

func (s *fakeStore) Close() error {
	*s.calls = append(*s.calls, "storeClose")
	return s.err
}

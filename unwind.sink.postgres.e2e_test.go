//go:build integration

package unwind

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPostgresContainer creates an ephemeral PostgreSQL container for testing.
func setupPostgresContainer(t *testing.T) (*PostgresSink, string, func()) {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:15",
		postgres.WithDatabase("unwind_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	sink, err := NewPostgresSink(PostgresSinkConfig{
		ConnectionString: connStr,
		AutoMigrate:      true,
		QueryTimeout:     30 * time.Second,
	})
	require.NoError(t, err, "failed to create postgres sink")

	cleanup := func() {
		if sink != nil {
			_ = sink.Close()
		}
		if container != nil {
			_ = container.Terminate(ctx)
		}
	}

	return sink, connStr, cleanup
}

func TestPostgresSink_E2E_ArchivesRootDiagnostic(t *testing.T) {
	sink, _, cleanup := setupPostgresContainer(t)
	defer cleanup()

	status := Run(context.Background(), func(th *Thread) int {
		th.Register(func() {
			th.RaiseMessage("archived")
		}, nil)
		return ExitCodeSuccess
	}, WithSink(sink))
	assert.Equal(t, DefaultExitCodeMessage, status)

	stored, err := sink.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, stored, 1)

	d := stored[0]
	assert.Equal(t, OriginRoot, d.Origin)
	assert.Equal(t, KindNameMessage, d.Kind)
	assert.Equal(t, "message = archived", d.Payload)
	assert.Equal(t, "relay", d.Transfer)
	assert.Equal(t, DefaultExitCodeMessage, d.Status)
	assert.Equal(t, 1, d.Handlers)
	assert.False(t, d.CreatedAt.IsZero())
}

func TestPostgresSink_E2E_ArchivesAbort(t *testing.T) {
	sink, _, cleanup := setupPostgresContainer(t)
	defer cleanup()

	status := Run(context.Background(), func(th *Thread) int {
		th.Register(func() {
			th.RaiseStatus(1)
		}, func(Payload) {
			th.RaiseStatus(2)
		})
		return ExitCodeSuccess
	}, WithSink(sink), WithExit(func(int) {}))
	assert.Equal(t, DefaultExitCodeAbort, status)

	stored, err := sink.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, OriginAbort, stored[0].Origin)
	assert.Equal(t, "status = 1", stored[0].Payload)
	assert.Equal(t, "status = 2", stored[0].Second)
}

func TestPostgresSink_E2E_ListNewestFirst(t *testing.T) {
	sink, _, cleanup := setupPostgresContainer(t)
	defer cleanup()
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		require.NoError(t, sink.Emit(ctx, &Diagnostic{Origin: OriginRoot, Payload: Status(i), Status: i}))
	}

	stored, err := sink.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, 3, stored[0].Status)
	assert.Equal(t, 2, stored[1].Status)
}

func TestPostgresSink_E2E_ConfigOptions(t *testing.T) {
	_, connStr, cleanup := setupPostgresContainer(t)
	defer cleanup()

	cfg := DefaultConfig()
	cfg.Postgres.ConnectionString = connStr
	cfg.Postgres.TablePrefix = "cfg_"

	opts, closeFn, err := cfg.Options(&testWriter{t: t})
	require.NoError(t, err)

	status := Run(context.Background(), func(th *Thread) int {
		th.RaiseStatus(4)
		return ExitCodeSuccess
	}, opts...)
	assert.Equal(t, 4, status)
	require.NoError(t, closeFn())

	reader, err := NewPostgresSink(PostgresSinkConfig{ConnectionString: connStr, TablePrefix: "cfg_"})
	require.NoError(t, err)
	defer reader.Close()

	stored, err := reader.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 4, stored[0].Status)
}

func TestPostgresSink_E2E_Closed(t *testing.T) {
	sink, _, cleanup := setupPostgresContainer(t)
	defer cleanup()

	require.NoError(t, sink.Close())

	err := sink.Emit(context.Background(), &Diagnostic{Origin: OriginRoot, Payload: Status(1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgPostgresClosed)

	_, err = sink.List(context.Background(), 1)
	require.Error(t, err)

	assert.Error(t, sink.Close())
}

// testWriter forwards writes to the test log.
type testWriter struct {
	t *testing.T
}

func (w *testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/user-auth-service/internal/events"
)

func TestStartAuditWorker_LogsEvents(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	dispatcher := events.NewInMemoryDispatcher()
	StartAuditWorker(dispatcher, zap.New(core))

	ctx := context.Background()
	require.NoError(t, dispatcher.Publish(ctx, events.New(events.EventLoginSucceeded, "u-1", "alice", nil)))
	require.NoError(t, dispatcher.Publish(ctx, events.New(events.EventLoginFailed, "", "mallory",
		events.LoginFailedPayload{Reason: "unknown user"})))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "alice", entries[0].ContextMap()["username"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, string(events.EventLoginFailed), entries[1].ContextMap()["event_type"])
}

func TestStartAuditWorker_NilSafe(t *testing.T) {
	assert.NotPanics(t, func() { StartAuditWorker(nil, zap.NewNop()) })
}

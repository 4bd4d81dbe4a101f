package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_DeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var got []Event
	d.Subscribe(EventLogout, func(_ context.Context, e Event) error {
		got = append(got, e)
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), New(EventLogout, "u-1", "alice", nil)))
	require.NoError(t, d.Publish(context.Background(), New(EventLoginFailed, "", "alice", nil)))

	require.Len(t, got, 1)
	assert.Equal(t, "u-1", got[0].SubjectID)
	assert.NotEmpty(t, got[0].ID)
	assert.False(t, got[0].Timestamp.IsZero())
}

func TestDispatcher_ContinuesAfterHandlerError(t *testing.T) {
	d := NewInMemoryDispatcher()
	boom := errors.New("boom")
	called := false
	d.Subscribe(EventUserDeleted, func(context.Context, Event) error { return boom })
	d.Subscribe(EventUserDeleted, func(context.Context, Event) error {
		called = true
		return nil
	})

	err := d.Publish(context.Background(), New(EventUserDeleted, "u-2", "bob", nil))
	require.ErrorIs(t, err, boom)
	assert.True(t, called)
}

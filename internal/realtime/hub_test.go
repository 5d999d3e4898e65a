package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubRegisterAndCount(t *testing.T) {
	hub := NewHub()
	assert.Equal(t, 0, hub.Count())

	a := NewSession(4)
	b := NewSession(4)
	hub.Register(a)
	hub.Register(b)
	assert.Equal(t, 2, hub.Count())

	hub.Unregister(a)
	assert.Equal(t, 1, hub.Count())
}

func TestHubUnregisterIsIdempotent(t *testing.T) {
	hub := NewHub()
	s := NewSession(4)
	hub.Register(s)

	hub.Unregister(s)
	// A second unregister of the same session must not panic on the
	// already-closed channel.
	hub.Unregister(s)
	assert.Equal(t, 0, hub.Count())
}

func TestHubUnregisterClosesOutbound(t *testing.T) {
	hub := NewHub()
	s := NewSession(4)
	hub.Register(s)
	hub.Unregister(s)

	_, open := <-s.Outbound()
	assert.False(t, open)
}

func TestHubBroadcastDeliversToAll(t *testing.T) {
	hub := NewHub()
	a := NewSession(4)
	b := NewSession(4)
	hub.Register(a)
	hub.Register(b)

	delivered, skipped := hub.Broadcast([]byte(`{"event":"x"}`))
	assert.Equal(t, 2, delivered)
	assert.Equal(t, 0, skipped)

	assert.Equal(t, []byte(`{"event":"x"}`), <-a.Outbound())
	assert.Equal(t, []byte(`{"event":"x"}`), <-b.Outbound())
}

func TestHubBroadcastSkipsFullBuffers(t *testing.T) {
	hub := NewHub()
	slow := NewSession(1)
	fast := NewSession(4)
	hub.Register(slow)
	hub.Register(fast)

	hub.Broadcast([]byte("one"))
	delivered, skipped := hub.Broadcast([]byte("two"))

	// slow's single-slot buffer still holds "one"; delivery to it is
	// skipped without blocking the other session.
	assert.Equal(t, 1, delivered)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, []byte("one"), <-fast.Outbound())
	assert.Equal(t, []byte("two"), <-fast.Outbound())
}

func TestHubSend(t *testing.T) {
	hub := NewHub()
	s := NewSession(1)
	hub.Register(s)

	require.NoError(t, hub.Send(s, []byte("snapshot")))
	assert.Equal(t, []byte("snapshot"), <-s.Outbound())

	require.NoError(t, hub.Send(s, []byte("a")))
	assert.ErrorIs(t, hub.Send(s, []byte("b")), ErrSessionBufferFull)
}

func TestHubSendToUnregisteredSession(t *testing.T) {
	hub := NewHub()
	s := NewSession(1)

	assert.Error(t, hub.Send(s, []byte("x")))
}

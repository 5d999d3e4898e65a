// Package realtime implements the live appointment coordination layer:
// connected dashboard sessions, event fan-out and the WebSocket endpoint.
package realtime

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrSessionBufferFull is returned when a session's outbound buffer cannot
// accept another message; delivery to that session is skipped.
var ErrSessionBufferFull = errors.New("session send buffer full")

// Session represents one connected dashboard client. It owns nothing but
// its outbound buffer; the Hub is the only long-lived holder.
type Session struct {
	ID   string
	send chan []byte
}

func NewSession(bufferSize int) *Session {
	if bufferSize <= 0 {
		bufferSize = 256
	}
	return &Session{
		ID:   uuid.New().String(),
		send: make(chan []byte, bufferSize),
	}
}

// Outbound exposes the messages queued for this session; the connection
// write pump drains it until the Hub closes it on unregister.
func (s *Session) Outbound() <-chan []byte {
	return s.send
}

// Hub tracks currently connected sessions. It is a pure presence index;
// appointment state lives behind the store.
type Hub struct {
	mu       sync.RWMutex
	sessions map[*Session]struct{}
}

func NewHub() *Hub {
	return &Hub{
		sessions: make(map[*Session]struct{}),
	}
}

func (h *Hub) Register(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[s] = struct{}{}
	connectedSessions.Set(float64(len(h.sessions)))
}

// Unregister removes a session and closes its outbound buffer. Removing an
// unknown or already-removed session is a no-op.
func (h *Hub) Unregister(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.sessions[s]; !ok {
		return
	}
	delete(h.sessions, s)
	close(s.send)
	connectedSessions.Set(float64(len(h.sessions)))
}

// Broadcast queues data for every connected session and reports how many
// sessions accepted it. A full buffer skips that session only.
func (h *Hub) Broadcast(data []byte) (delivered int, skipped int) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for s := range h.sessions {
		select {
		case s.send <- data:
			delivered++
		default:
			skipped++
		}
	}
	return delivered, skipped
}

// Send queues data for a single session, e.g. a snapshot reply.
func (h *Hub) Send(s *Session, data []byte) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if _, ok := h.sessions[s]; !ok {
		return errors.New("session not registered")
	}
	select {
	case s.send <- data:
		return nil
	default:
		return ErrSessionBufferFull
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

package websocket

import (
	"path/filepath"
	"testing"
	"time"

	"getscience-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHub(nil, logger.NewIsolatedLogger(filepath.Join(t.TempDir(), "ws.log")))
	go h.Run()
	return h
}

func registerTestClient(t *testing.T, h *Hub, buffer int) *Client {
	t.Helper()
	client := &Client{Hub: h, UserID: uuid.New(), Send: make(chan []byte, buffer)}
	h.register <- client
	return client
}

func waitForRoster(t *testing.T, h *Hub, users int) {
	t.Helper()
	require.Eventually(t, func() bool {
		h.mu.RLock()
		defer h.mu.RUnlock()
		return len(h.clients) == users
	}, time.Second, 5*time.Millisecond)
}

func TestBroadcastDropsSlowClientsWithoutStalling(t *testing.T) {
	h := newTestHub(t)

	// Two clients whose send buffers are already full; a third that can
	// still take a frame.
	slowA := registerTestClient(t, h, 0)
	slowB := registerTestClient(t, h, 0)
	healthy := registerTestClient(t, h, 1)
	waitForRoster(t, h, 3)

	done := make(chan struct{})
	go func() {
		h.Broadcast("notification", map[string]interface{}{"title": "hello"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Broadcast did not return with slow clients connected")
	}

	select {
	case msg := <-healthy.Send:
		assert.Contains(t, string(msg), "hello")
	default:
		t.Fatal("healthy client did not receive the broadcast")
	}

	// The stalled connections get dropped from the roster.
	require.Eventually(t, func() bool {
		h.mu.RLock()
		defer h.mu.RUnlock()
		_, aOpen := h.clients[slowA.UserID]
		_, bOpen := h.clients[slowB.UserID]
		return !aOpen && !bOpen
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSendSurvivesSlowSiblingConnection(t *testing.T) {
	h := newTestHub(t)

	userID := uuid.New()
	slow := &Client{Hub: h, UserID: userID, Send: make(chan []byte)}
	fast := &Client{Hub: h, UserID: userID, Send: make(chan []byte, 1)}
	h.register <- slow
	h.register <- fast
	// Both connections share one user, so waitForRoster can't tell one
	// registered connection from two; wait for the second directly.
	require.Eventually(t, func() bool {
		h.mu.RLock()
		defer h.mu.RUnlock()
		return len(h.clients[userID]) == 2
	}, time.Second, 5*time.Millisecond)

	done := make(chan struct{})
	go func() {
		h.Send(userID, "notification", map[string]interface{}{"title": "ping"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Send did not return with a slow sibling connection")
	}

	select {
	case msg := <-fast.Send:
		assert.Contains(t, string(msg), "ping")
	case <-time.After(time.Second):
		t.Fatal("fast connection did not receive the message")
	}
}

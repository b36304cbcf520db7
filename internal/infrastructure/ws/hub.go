// Package ws fans recorded notifications out to connected websocket clients.
package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/taskpulse/daily-tracker/internal/api/metrics"
	"github.com/taskpulse/daily-tracker/internal/core/domain"
)

// Hub tracks connected clients and pushes each broadcast notification to all
// of them. Delivery is best-effort: a client that cannot be written to is
// dropped, and an offline client recovers by re-fetching the notification
// list on reconnect.
type Hub struct {
	mu        sync.Mutex
	clients   map[*websocket.Conn]struct{}
	writeWait time.Duration
	log       zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients:   make(map[*websocket.Conn]struct{}),
		writeWait: defaultWriteWait,
		log:       log,
	}
}

// Register adds a connected client to the broadcast set.
func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()
	metrics.WebsocketClients.Inc()
}

// Unregister removes the client and closes its connection.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	_, ok := h.clients[conn]
	delete(h.clients, conn)
	h.mu.Unlock()
	if ok {
		metrics.WebsocketClients.Dec()
		_ = conn.Close()
	}
}

// defaultWriteWait bounds a single client write. A client that cannot drain
// one frame within this window counts as unreachable and is evicted, so a
// stalled peer never holds the hub lock hostage.
const defaultWriteWait = 5 * time.Second

// Broadcast pushes the notification to every connected client. Writes are
// serialized under the hub lock; a failed or timed-out write evicts the
// client.
func (h *Hub) Broadcast(n domain.Notification) {
	metrics.NotificationsPublishedTotal.Inc()

	var failed []*websocket.Conn
	h.mu.Lock()
	for c := range h.clients {
		_ = c.SetWriteDeadline(time.Now().Add(h.writeWait))
		if err := c.WriteJSON(n); err != nil {
			h.log.Debug().Err(err).Msg("dropping unreachable websocket client")
			failed = append(failed, c)
		}
	}
	h.mu.Unlock()

	for _, c := range failed {
		h.Unregister(c)
	}
}

// ClientCount reports the current number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

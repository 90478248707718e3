package demo

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// client wraps a WebSocket connection with its own write mutex.
type client struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

// Hub broadcasts theme changes to every connected tab, so switching the
// theme in one tab updates the others live.
type Hub struct {
	log *zap.Logger

	mu      sync.RWMutex
	clients map[string]*client
}

// NewHub creates an empty hub.
func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{log: log, clients: make(map[string]*client)}
}

var upgrader = websocket.Upgrader{
	// The demo runs cross-origin in development.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Handler upgrades the request and keeps the connection registered until
// the client goes away.
func (h *Hub) Handler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	c := &client{id: uuid.NewString(), conn: conn}

	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, c.id)
		h.mu.Unlock()
		conn.Close()
	}()

	// Drain reads until the peer closes; broadcasts flow the other way.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcast sends message to all connected clients. Dead connections are
// dropped on write failure.
func (h *Hub) Broadcast(message any) {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.mu.Lock()
		err := c.conn.WriteJSON(message)
		c.mu.Unlock()
		if err != nil {
			h.mu.Lock()
			delete(h.clients, c.id)
			h.mu.Unlock()
			c.conn.Close()
		}
	}
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Package notifications implements the push channel for order, inventory,
// payment, and ticket events. The hub is an explicitly constructed instance
// wired through the services; there is no package-level registry.
package notifications

import (
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"
)

type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
	At   time.Time   `json:"at"`
}

type client struct {
	conn *websocket.Conn
	send chan Event
}

// Hub tracks connected clients keyed by user ID. Delivery is fire-and-forget:
// events for absent users, or users whose send buffer is full, are dropped.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*client]struct{}
	log     zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[string]map[*client]struct{}),
		log:     log,
	}
}

// Push queues an event for every connection the user currently holds.
func (h *Hub) Push(userID string, eventType string, data interface{}) {
	event := Event{Type: eventType, Data: data, At: time.Now()}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[userID] {
		select {
		case c.send <- event:
		default:
			h.log.Debug().Str("user", userID).Str("event", eventType).Msg("dropping event, client buffer full")
		}
	}
}

// Serve owns the connection until the client goes away. It is meant to run
// inside the websocket handler goroutine.
func (h *Hub) Serve(userID string, conn *websocket.Conn) {
	c := &client{conn: conn, send: make(chan Event, 16)}

	h.mu.Lock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*client]struct{})
	}
	h.clients[userID][c] = struct{}{}
	h.mu.Unlock()

	h.log.Info().Str("user", userID).Msg("websocket client connected")

	done := make(chan struct{})
	go func() {
		defer close(done)
		// Drain reads so pings and close frames are processed.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case event := <-c.send:
			if err := conn.WriteJSON(event); err != nil {
				h.remove(userID, c)
				return
			}
		case <-done:
			h.remove(userID, c)
			return
		}
	}
}

func (h *Hub) remove(userID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.clients[userID]; ok {
		delete(conns, c)
		if len(conns) == 0 {
			delete(h.clients, userID)
		}
	}
	h.log.Info().Str("user", userID).Msg("websocket client disconnected")
}

// Connected reports how many connections a user currently has.
func (h *Hub) Connected(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

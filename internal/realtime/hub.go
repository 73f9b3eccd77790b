// Package realtime fans events out to a user's connected websocket clients.
// Each user has their own room; the server publishes to a room by user ID.
package realtime

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// Event types sent over WebSocket
const (
	EventActivityAdded = "activity-added"
	EventGoalCreated   = "goal-created"
	EventGoalUpdated   = "goal-updated"
	EventGoalDeleted   = "goal-deleted"
	EventNewInsight    = "new-insight"
)

// Event is the JSON message sent to connected clients
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// connection wraps a websocket connection with its user ID
type connection struct {
	conn   *websocket.Conn
	userID uuid.UUID
}

// Hub manages WebSocket connections per user
type Hub struct {
	mu    sync.RWMutex
	rooms map[uuid.UUID]map[*connection]bool // userID -> set of connections
}

// Global hub instance
var WS = &Hub{
	rooms: make(map[uuid.UUID]map[*connection]bool),
}

// Join registers a connection into the user's room and returns a handle used
// to leave it again.
func (h *Hub) Join(userID uuid.UUID, conn *websocket.Conn) *connection {
	c := &connection{conn: conn, userID: userID}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[userID] == nil {
		h.rooms[userID] = make(map[*connection]bool)
	}
	h.rooms[userID][c] = true
	log.Printf("WS: user %s connected (%d connection(s))", userID, len(h.rooms[userID]))
	return c
}

// Leave removes a connection from the user's room.
func (h *Hub) Leave(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.rooms[c.userID]; ok {
		delete(conns, c)
		if len(conns) == 0 {
			delete(h.rooms, c.userID)
		}
	}
}

// Publish sends an event to every connection in the user's room. No-op when
// the user has no open connections.
func (h *Hub) Publish(userID uuid.UUID, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conns, ok := h.rooms[userID]
	if !ok {
		return
	}

	msg, err := json.Marshal(event)
	if err != nil {
		log.Printf("WS publish marshal error: %v", err)
		return
	}

	for c := range conns {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Printf("WS write error: %v", err)
		}
	}
}

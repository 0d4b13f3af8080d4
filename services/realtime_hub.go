package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// MealEvent is pushed to connected clients whenever the meal collection
// changes, so open screens can refresh without polling.
type MealEvent struct {
	Type   string `json:"type"` // meal.created | meal.updated | meal.deleted | meal.cleared
	Meal   any    `json:"meal,omitempty"`
	MealID string `json:"mealId,omitempty"`
}

type WSClient struct {
	Conn *websocket.Conn
}

// RealtimeHub fans meal events out to every connected client.
type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[*WSClient]struct{}
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{clients: make(map[*WSClient]struct{})}
}

func (h *RealtimeHub) Register(c *WSClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *RealtimeHub) Unregister(c *WSClient) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	_ = c.Conn.Close()
}

func (h *RealtimeHub) Broadcast(ev MealEvent) {
	msg, _ := json.Marshal(ev)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		_ = c.Conn.WriteMessage(websocket.TextMessage, msg)
	}
}

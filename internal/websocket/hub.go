// Package websocket pushes record change notifications to connected
// clients, keyed by the user id taken from their token.
package websocket

import (
	"encoding/json"
	"sync"
	"time"
)

const (
	EventCreated     = "record.created"
	EventUpdated     = "record.updated"
	EventDeleted     = "record.deleted"
	EventLeaveStatus = "leave.status"
	EventPayroll     = "payroll.processed"
)

type Event struct {
	Type     string    `json:"type"`
	Resource string    `json:"resource"`
	ID       string    `json:"id,omitempty"`
	Status   string    `json:"status,omitempty"`
	At       time.Time `json:"at"`
}

type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]struct{}),
	}
}

func (h *Hub) Register(userID string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*Client]struct{})
	}
	h.clients[userID][client] = struct{}{}
}

func (h *Hub) Unregister(userID string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		return
	}
	delete(h.clients[userID], client)
	if len(h.clients[userID]) == 0 {
		delete(h.clients, userID)
	}
}

// Connected reports how many sockets userID holds open.
func (h *Hub) Connected(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func stamp(event Event) []byte {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}
	payload, _ := json.Marshal(event)
	return payload
}

// Publish delivers event to every socket of one user. Slow clients drop
// messages rather than block the publisher.
func (h *Hub) Publish(userID string, event Event) {
	payload := stamp(event)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients[userID] {
		client.deliver(payload)
	}
}

func (h *Hub) Broadcast(event Event) {
	payload := stamp(event)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, clients := range h.clients {
		for client := range clients {
			client.deliver(payload)
		}
	}
}

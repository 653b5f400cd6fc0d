// Package live pushes registration updates to connected home pages over
// websockets, so event cards can bump their counters without polling.
package live

import (
	"encoding/json"
	"log"
	"sync"
)

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// RegistrationUpdate is the payload broadcast after each successful
// registration.
type RegistrationUpdate struct {
	Event      string `json:"event"`
	TeamCode   string `json:"team_code"`
	Registered int    `json:"registered"`
}

type Hub struct {
	Register   chan *Client
	Unregister chan *Client
	broadcast  chan []byte

	clients map[*Client]bool
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		broadcast:  make(chan []byte),
		clients:    make(map[*Client]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			log.Printf("live: client connected, %d total", len(h.clients))
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				client.mu.Lock()
				if !client.closed {
					close(client.send)
					client.closed = true
				}
				client.mu.Unlock()
				delete(h.clients, client)
				log.Printf("live: client disconnected, %d left", len(h.clients))
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				client.mu.Lock()
				if client.closed {
					client.mu.Unlock()
					continue
				}
				select {
				case client.send <- message:
				default:
					// Slow client; drop the update rather than block the hub.
				}
				client.mu.Unlock()
			}
			h.mu.RUnlock()
		}
	}
}

// ClientCount reports how many clients are attached to the feed.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// BroadcastRegistration fans a new-registration event out to every
// connected client.
func (h *Hub) BroadcastRegistration(update RegistrationUpdate) {
	msg := Message{Type: "REGISTRATION_CREATED", Payload: update}
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("live: failed to marshal update: %v", err)
		return
	}
	h.broadcast <- data
}

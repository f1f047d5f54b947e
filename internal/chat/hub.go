package chat

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"negochat/internal/models"
	"negochat/internal/types"
)

// Hub owns the connection layer: the live client set, registration and
// disconnect cleanup. Room membership and presence mutations happen
// synchronously inside event handling; only outbound AI calls overlap.
type Hub struct {
	mu       sync.RWMutex
	clients  map[string]*Client
	Registry *Registry
	Presence *Presence
	Router   *Router

	Register   chan *Client
	Unregister chan *Client
	Quit       chan struct{}
}

func NewHub(registry *Registry, presence *Presence) *Hub {
	log.Println("[HUB] Initializing new Hub instance...")
	return &Hub{
		clients:    make(map[string]*Client),
		Registry:   registry,
		Presence:   presence,
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Quit:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	log.Println("[HUB] Main loop started. Listening for events...")
	for {
		select {
		case <-h.Quit:
			log.Println("[HUB] Quit signal received. Shutting down all client connections...")
			h.mu.Lock()
			for _, client := range h.clients {
				h.cleanupClientLocked(client)
			}
			h.mu.Unlock()
			return

		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client.ID] = client
			total := len(h.clients)
			h.mu.Unlock()
			log.Printf("[HUB] Registered connection %s. Total active: %d", client.ID, total)

		case client := <-h.Unregister:
			h.disconnect(client)
		}
	}
}

// disconnect performs presence and membership cleanup exactly once per
// connection and notifies every room the connection belonged to.
func (h *Hub) disconnect(c *Client) {
	c.once.Do(func() {
		log.Printf("[HUB] Disconnecting %s", c.ID)

		user, known := h.Presence.Lookup(c.ID)
		left := h.Registry.RemoveEverywhere(c.ID)
		h.Presence.Unregister(c.ID)

		h.mu.Lock()
		if _, ok := h.clients[c.ID]; ok {
			h.cleanupClientLocked(c)
		}
		remaining := len(h.clients)
		h.mu.Unlock()

		if known {
			for _, roomID := range left {
				h.ToRoom(roomID, types.EventUserLeftRoom, types.UserLeftRoomPayload{
					RoomID:   roomID,
					UserID:   c.ID,
					Username: user.Username,
				})
			}
		}

		log.Printf("[HUB] Session closed for %s. Active clients remaining: %d", c.ID, remaining)
	})
}

func (h *Hub) cleanupClientLocked(c *Client) {
	delete(h.clients, c.ID)
	if c.Conn != nil {
		c.Conn.Close()
	}
	close(c.Send)
}

func (h *Hub) envelope(event string, data any) []byte {
	raw, err := json.Marshal(data)
	if err != nil {
		log.Printf("[HUB] Failed to marshal %s payload: %v", event, err)
		return nil
	}
	payload, _ := json.Marshal(types.Envelope{Event: event, Data: raw})
	return payload
}

// ToConn delivers one event to a single connection; unknown or gone
// connections are a no-op.
func (h *Hub) ToConn(connID, event string, data any) {
	payload := h.envelope(event, data)
	if payload == nil {
		return
	}

	h.mu.RLock()
	client, ok := h.clients[connID]
	h.mu.RUnlock()
	if !ok {
		return
	}
	h.deliver(client, payload)
}

// ToRoom fans an event out to every current member of the room,
// sender included.
func (h *Hub) ToRoom(roomID, event string, data any) {
	h.toRoomExcept(roomID, "", event, data)
}

// ToRoomExcept is ToRoom minus one connection, used for join notices
// that should not echo back to the joiner.
func (h *Hub) ToRoomExcept(roomID, exceptID, event string, data any) {
	h.toRoomExcept(roomID, exceptID, event, data)
}

func (h *Hub) toRoomExcept(roomID, exceptID, event string, data any) {
	payload := h.envelope(event, data)
	if payload == nil {
		return
	}

	for _, connID := range h.Registry.Members(roomID) {
		if connID == exceptID {
			continue
		}
		h.mu.RLock()
		client, ok := h.clients[connID]
		h.mu.RUnlock()
		if !ok {
			continue
		}
		h.deliver(client, payload)
	}
}

// deliver pushes without blocking; a full buffer marks a slow consumer
// that gets evicted rather than stalling the whole fan-out.
func (h *Hub) deliver(client *Client, payload []byte) {
	select {
	case client.Send <- payload:
	default:
		log.Printf("[HUB] WARNING: Client %s buffer full. Evicting slow consumer.", client.ID)
		go func(c *Client) { h.Unregister <- c }(client)
	}
}

func (h *Hub) systemMessage(roomID, body string) models.Message {
	return models.Message{
		RoomID:    roomID,
		UserID:    systemUserID,
		Sender:    "SYSTEM",
		Body:      body,
		Type:      models.TypeSystem,
		Timestamp: time.Now(),
	}
}

package chat

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"negochat/internal/models"
	"negochat/internal/types"

	"github.com/google/uuid"
)

// handleEvent dispatches one decoded inbound frame. Malformed payloads
// answer with a connection-scoped error event; room-wide broadcasts are
// reserved for chat content and AI replies.
func (h *Hub) handleEvent(c *Client, env types.Envelope) {
	switch env.Event {
	case types.EventUserJoin:
		h.handleUserJoin(c, env.Data)
	case types.EventJoinRoom:
		h.handleJoinRoom(c, env.Data)
	case types.EventSendMessage:
		h.handleSendMessage(c, env.Data)
	case types.EventAnalyzeNegotiation:
		h.handleAnalyzeNegotiation(c, env.Data)
	default:
		log.Printf("[HUB] Unknown event %q from %s", env.Event, c.ID)
	}
}

func (h *Hub) handleUserJoin(c *Client, data json.RawMessage) {
	var payload types.UserJoinPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		log.Printf("[HUB] Malformed user_join from %s: %v", c.ID, err)
		h.ToConn(c.ID, types.EventError, types.ErrorPayload{Message: "Failed to join"})
		return
	}

	username := payload.Username
	if username == "" {
		username = "زائر"
	}
	uid := payload.UID
	if uid == "" {
		uid = "guest"
	}

	h.Presence.Register(c.ID, &models.User{
		UID:      uid,
		Username: username,
		IsGuest:  payload.IsAnonymous,
	})
	log.Printf("[HUB] User joined: %s (%s)", username, c.ID)

	h.ToConn(c.ID, types.EventConnectionSuccess, types.ConnectionSuccessPayload{Message: "Connected successfully"})
}

func (h *Hub) handleJoinRoom(c *Client, data json.RawMessage) {
	var payload types.JoinRoomPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.Room == "" {
		log.Printf("[HUB] Malformed join_room from %s: %v", c.ID, err)
		h.ToConn(c.ID, types.EventError, types.ErrorPayload{Message: "Failed to join room"})
		return
	}
	roomID := payload.Room

	user, ok := h.Presence.Lookup(c.ID)
	if !ok && payload.User != nil {
		// Late announcement piggybacked on the join itself.
		h.Presence.Register(c.ID, payload.User)
		user, ok = payload.User, true
	}
	if !ok {
		h.ToConn(c.ID, types.EventError, types.ErrorPayload{Message: "User not authenticated"})
		return
	}

	log.Printf("[HUB] User %s (%s) joining room: %s", user.Username, c.ID, roomID)

	// A connection is in at most one room; switching leaves the old one
	// with a departure notice for whoever stays behind.
	if prev := c.RoomID; prev != "" && prev != roomID {
		if h.Registry.RemoveMember(prev, c.ID) {
			h.ToRoom(prev, types.EventUserLeftRoom, types.UserLeftRoomPayload{
				RoomID:   prev,
				UserID:   c.ID,
				Username: user.Username,
			})
		}
	}

	room := h.Registry.GetOrCreate(roomID)
	h.Registry.AddMember(roomID, c.ID, user)
	c.RoomID = roomID

	h.ToRoomExcept(roomID, c.ID, types.EventUserJoined, types.UserJoinedPayload{
		Username:  user.Username,
		UserID:    c.ID,
		Timestamp: time.Now(),
	})

	h.ToConn(c.ID, types.EventRoomJoined, types.RoomJoinedPayload{
		Room:      roomID,
		Timestamp: time.Now(),
	})

	// Every join emits its own welcome, deliberately not deduplicated.
	h.ToConn(c.ID, types.EventNewMessage, models.Message{
		ID:        uuid.NewString(),
		RoomID:    room.ID,
		UserID:    negoUserID,
		Sender:    negoSenderName,
		Body:      fmt.Sprintf("مرحباً بك %s في Nego AI! يمكنك سؤالي عن العقارات والتفاوض باستخدام @nego", user.Username),
		Timestamp: time.Now(),
	})
}

func (h *Hub) handleSendMessage(c *Client, data json.RawMessage) {
	var payload types.SendMessagePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		log.Printf("[HUB] Malformed send_message from %s: %v", c.ID, err)
		h.ToConn(c.ID, types.EventError, types.ErrorPayload{Message: "Invalid message payload"})
		return
	}

	roomID := payload.RoomID
	if roomID == "" {
		roomID = c.RoomID
	}

	if err := h.Router.HandleIncoming(c.ID, roomID, payload.Message); err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			h.ToConn(c.ID, types.EventError, types.ErrorPayload{Message: "User not found"})
			return
		}
		log.Printf("[HUB] send_message handling failed for %s: %v", c.ID, err)
	}
}

func (h *Hub) handleAnalyzeNegotiation(c *Client, data json.RawMessage) {
	var payload types.AnalyzeNegotiationPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		log.Printf("[HUB] Malformed analyze_negotiation from %s: %v", c.ID, err)
		h.ToConn(c.ID, types.EventError, types.ErrorPayload{Message: "Failed to process negotiation situation"})
		return
	}

	roomID := payload.RoomID
	if roomID == "" {
		roomID = c.RoomID
	}

	if err := h.Router.HandleAnalyze(c.ID, roomID, payload.Situation); err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			h.ToConn(c.ID, types.EventError, types.ErrorPayload{Message: "User not found"})
			return
		}
		log.Printf("[HUB] analyze_negotiation handling failed for %s: %v", c.ID, err)
	}
}

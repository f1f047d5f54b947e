package types

import (
	"encoding/json"
	"time"

	"negochat/internal/models"
)

// Envelope is the wire frame for every websocket event, client and server
// bound alike.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

const (
	EventUserJoin           = "user_join"
	EventJoinRoom           = "join_room"
	EventSendMessage        = "send_message"
	EventAnalyzeNegotiation = "analyze_negotiation"

	EventConnectionSuccess = "connection_success"
	EventNewMessage        = "new_message"
	EventRoomJoined        = "room_joined"
	EventUserJoined        = "user_joined"
	EventUserLeftRoom      = "user_left_room"
	EventError             = "error"
)

type UserJoinPayload struct {
	Username    string `json:"username"`
	UID         string `json:"uid"`
	IsAnonymous bool   `json:"isAnonymous"`
}

// JoinRoomPayload accepts both a bare room-id string and the object form
// {"room": "...", "user": {...}}.
type JoinRoomPayload struct {
	Room string       `json:"room"`
	User *models.User `json:"user,omitempty"`
}

func (p *JoinRoomPayload) UnmarshalJSON(data []byte) error {
	var roomID string
	if err := json.Unmarshal(data, &roomID); err == nil {
		p.Room = roomID
		p.User = nil
		return nil
	}

	type alias JoinRoomPayload
	var obj alias
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*p = JoinRoomPayload(obj)
	return nil
}

type SendMessagePayload struct {
	Message string `json:"message"`
	RoomID  string `json:"roomId"`
}

type AnalyzeNegotiationPayload struct {
	Situation string `json:"situation"`
	RoomID    string `json:"roomId"`
}

type ConnectionSuccessPayload struct {
	Message string `json:"message"`
}

type RoomJoinedPayload struct {
	Room      string    `json:"room"`
	Timestamp time.Time `json:"timestamp"`
}

type UserJoinedPayload struct {
	Username  string    `json:"username"`
	UserID    string    `json:"userId"`
	Timestamp time.Time `json:"timestamp"`
}

type UserLeftRoomPayload struct {
	RoomID   string `json:"roomId"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

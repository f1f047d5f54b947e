package models

import (
	"time"
)

type MessageType string

const (
	TypeAI     MessageType = "ai"
	TypeSystem MessageType = "system"
)

// Message is immutable once constructed. Human messages carry no type tag;
// AI and system messages are tagged so clients can render them apart.
type Message struct {
	ID        string      `json:"id"`
	RoomID    string      `json:"roomId"`
	UserID    string      `json:"userId"`
	Sender    string      `json:"sender"`
	Body      string      `json:"message"`
	Type      MessageType `json:"type,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

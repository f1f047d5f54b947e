package chat

import (
	"context"
	"errors"
	"log"
	"time"

	"negochat/internal/ai"
	"negochat/internal/models"
	"negochat/internal/types"

	"github.com/google/uuid"
)

// ErrUnauthenticated is returned when a message arrives from a connection
// that never announced an identity. Nothing is broadcast in that case.
var ErrUnauthenticated = errors.New("unauthenticated connection")

const (
	negoSenderName = "Nego AI"
	negoUserID     = "nego-ai"
	systemUserID   = "system"
	aiUserID       = "ai"

	emptyQueryGuidance = "يرجى تقديم استفسار أو موقف تفاوضي بعد @nego أو @gemini"
)

// Sender delivers events to a single connection or fans them out to every
// current member of a room. The Hub is the production implementation.
type Sender interface {
	ToConn(connID, event string, data any)
	ToRoom(roomID, event string, data any)
}

// Advisor is the AI gateway surface the router depends on.
type Advisor interface {
	NegotiationAdvice(ctx context.Context, situation string) (string, error)
	PersonalityReply(ctx context.Context, personality, message string) (string, error)
}

// Archiver is the optional persistence collaborator. Writes are
// best-effort; failures are logged and swallowed.
type Archiver interface {
	Save(ctx context.Context, msg *models.Message) error
}

// Router is the single entry point for inbound chat text. Registry and
// presence are injected so tests run against isolated instances.
type Router struct {
	registry  *Registry
	presence  *Presence
	advisor   Advisor
	sender    Sender
	archive   Archiver // nil disables archiving
	aiTimeout time.Duration
}

func NewRouter(registry *Registry, presence *Presence, advisor Advisor, sender Sender, archive Archiver) *Router {
	return &Router{
		registry:  registry,
		presence:  presence,
		advisor:   advisor,
		sender:    sender,
		archive:   archive,
		aiTimeout: 60 * time.Second,
	}
}

// HandleIncoming stores and rebroadcasts a chat message, then fans out the
// AI work. The human message is always broadcast before any AI call runs,
// so AI latency never delays chat delivery. A recognized command with a
// non-empty query and the ambient personality reply are two independent
// tasks racing each other; their completion order is not serialized.
func (rt *Router) HandleIncoming(connID, roomID, body string) error {
	user, ok := rt.presence.Lookup(connID)
	if !ok {
		return ErrUnauthenticated
	}

	room := rt.registry.GetOrCreate(roomID)

	msg := models.Message{
		ID:        uuid.NewString(),
		RoomID:    roomID,
		UserID:    connID,
		Sender:    user.Username,
		Body:      body,
		Timestamp: time.Now(),
	}
	rt.sender.ToRoom(roomID, types.EventNewMessage, msg)
	rt.registry.AppendMessage(roomID, msg)
	rt.archiveAsync(msg)

	if cmd, found := ParseCommand(body); found {
		if cmd.Query == "" {
			rt.sender.ToRoom(roomID, types.EventNewMessage, models.Message{
				ID:        uuid.NewString(),
				RoomID:    roomID,
				UserID:    systemUserID,
				Sender:    negoSenderName,
				Body:      emptyQueryGuidance,
				Type:      models.TypeSystem,
				Timestamp: time.Now(),
			})
			// A prefix with nothing behind it short-circuits the rest of
			// the pipeline; no gateway call of any kind is made.
			return nil
		}
		go rt.commandReply(connID, roomID, cmd.Query)
	}

	go rt.ambientReply(roomID, room.Name, room.Personality, body)

	return nil
}

// HandleAnalyze is the direct path into the negotiation profile,
// bypassing prefix parsing.
func (rt *Router) HandleAnalyze(connID, roomID, situation string) error {
	if _, ok := rt.presence.Lookup(connID); !ok {
		return ErrUnauthenticated
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), rt.aiTimeout)
		defer cancel()

		advice, err := rt.advisor.NegotiationAdvice(ctx, situation)
		if err != nil {
			log.Printf("[ROUTER] Negotiation analysis failed for room %s: %v", roomID, err)
			rt.sender.ToConn(connID, types.EventNewMessage, models.Message{
				ID:        uuid.NewString(),
				RoomID:    roomID,
				UserID:    systemUserID,
				Sender:    negoSenderName,
				Body:      ai.Fallback(err),
				Type:      models.TypeSystem,
				Timestamp: time.Now(),
			})
			return
		}

		rt.sender.ToRoom(roomID, types.EventNewMessage, models.Message{
			ID:        uuid.NewString(),
			RoomID:    roomID,
			UserID:    systemUserID,
			Sender:    negoSenderName,
			Body:      advice,
			Type:      models.TypeAI,
			Timestamp: time.Now(),
		})
	}()

	return nil
}

// commandReply answers an explicit @-prefixed query. Failures are scoped
// to the originating connection so the room is not spammed.
func (rt *Router) commandReply(connID, roomID, query string) {
	ctx, cancel := context.WithTimeout(context.Background(), rt.aiTimeout)
	defer cancel()

	advice, err := rt.advisor.NegotiationAdvice(ctx, query)
	if err != nil {
		log.Printf("[ROUTER] Command reply failed for room %s: %v", roomID, err)
		rt.sender.ToConn(connID, types.EventNewMessage, models.Message{
			ID:        uuid.NewString(),
			RoomID:    roomID,
			UserID:    systemUserID,
			Sender:    negoSenderName,
			Body:      ai.Fallback(err),
			Type:      models.TypeSystem,
			Timestamp: time.Now(),
		})
		return
	}

	msg := models.Message{
		ID:        uuid.NewString(),
		RoomID:    roomID,
		UserID:    systemUserID,
		Sender:    negoSenderName,
		Body:      advice,
		Type:      models.TypeAI,
		Timestamp: time.Now(),
	}
	rt.registry.AppendMessage(roomID, msg)
	rt.sender.ToRoom(roomID, types.EventNewMessage, msg)
}

// ambientReply issues the per-message personality answer. On failure it
// logs and drops; broadcasting duplicate error text for every message
// would drown the room.
func (rt *Router) ambientReply(roomID, roomName, personality, body string) {
	ctx, cancel := context.WithTimeout(context.Background(), rt.aiTimeout)
	defer cancel()

	reply, err := rt.advisor.PersonalityReply(ctx, personality, body)
	if err != nil {
		log.Printf("[ROUTER] Ambient reply dropped for room %s: %v", roomID, err)
		return
	}

	msg := models.Message{
		ID:        uuid.NewString(),
		RoomID:    roomID,
		UserID:    aiUserID,
		Sender:    roomName + " AI",
		Body:      reply,
		Type:      models.TypeAI,
		Timestamp: time.Now(),
	}
	rt.registry.AppendMessage(roomID, msg)
	rt.sender.ToRoom(roomID, types.EventNewMessage, msg)
	rt.archiveAsync(msg)
}

func (rt *Router) archiveAsync(msg models.Message) {
	if rt.archive == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rt.archive.Save(ctx, &msg); err != nil {
			log.Printf("[ROUTER] Archive write failed for message %s: %v", msg.ID, err)
		}
	}()
}

package chat

import (
	"sync"

	"negochat/internal/models"
)

// HistoryLimit caps the per-room message history. Appending past the cap
// evicts the oldest entry so memory stays bounded for process lifetime.
const HistoryLimit = 100

const defaultPersonality = "friendly AI assistant specializing in real estate negotiation"

// Room fields are fixed at creation; members and history are only touched
// through Registry methods.
type Room struct {
	ID          string
	Name        string
	Personality string

	members map[string]*models.User
	history []models.Message
}

// Registry owns every Room and its history. Rooms are created lazily on
// first join and live for the process lifetime.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

func NewRegistry() *Registry {
	r := &Registry{rooms: make(map[string]*Room)}

	seeded := []struct {
		id, name, personality string
	}{
		{"general", "General Chat", "friendly and helpful assistant"},
		{"tech", "Tech Support", "technical expert who helps solve computer and programming problems"},
		{"creative", "Creative Corner", "creative and artistic assistant who helps with design and creative ideas"},
		{"business", "Business Talk", "professional business consultant who helps with business strategy and advice"},
	}
	for _, s := range seeded {
		r.rooms[s.id] = newRoom(s.id, s.name, s.personality)
	}

	return r
}

func newRoom(id, name, personality string) *Room {
	return &Room{
		ID:          id,
		Name:        name,
		Personality: personality,
		members:     make(map[string]*models.User),
		history:     make([]models.Message, 0),
	}
}

// GetOrCreate never fails: an unknown id gets a fresh room named after
// itself with the default negotiation personality.
func (r *Registry) GetOrCreate(roomID string) *Room {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[roomID]
	if !ok {
		room = newRoom(roomID, roomID, defaultPersonality)
		r.rooms[roomID] = room
	}
	return room
}

// AddMember is idempotent: re-adding a present connection just re-assigns
// the same entry.
func (r *Registry) AddMember(roomID, connID string, user *models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[roomID]
	if !ok {
		room = newRoom(roomID, roomID, defaultPersonality)
		r.rooms[roomID] = room
	}
	room.members[connID] = user
}

// RemoveMember reports whether the connection was actually a member, so
// the caller can decide whether a departure notice is due.
func (r *Registry) RemoveMember(roomID, connID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[roomID]
	if !ok {
		return false
	}
	if _, present := room.members[connID]; !present {
		return false
	}
	delete(room.members, connID)
	return true
}

// RemoveEverywhere scans all rooms and removes the connection from each,
// returning the ids of rooms it actually left. Safe to call more than
// once; the second call finds nothing.
func (r *Registry) RemoveEverywhere(connID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var left []string
	for id, room := range r.rooms {
		if _, present := room.members[connID]; present {
			delete(room.members, connID)
			left = append(left, id)
		}
	}
	return left
}

func (r *Registry) Members(roomID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[roomID]
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(room.members))
	for connID := range room.members {
		ids = append(ids, connID)
	}
	return ids
}

// AppendMessage applies the history cap, silently dropping the oldest
// entry rather than growing unbounded.
func (r *Registry) AppendMessage(roomID string, msg models.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[roomID]
	if !ok {
		room = newRoom(roomID, roomID, defaultPersonality)
		r.rooms[roomID] = room
	}

	room.history = append(room.history, msg)
	if len(room.history) > HistoryLimit {
		copy(room.history, room.history[1:])
		room.history = room.history[:HistoryLimit]
	}
}

// History returns a snapshot copy in arrival order.
func (r *Registry) History(roomID string) []models.Message {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[roomID]
	if !ok {
		return nil
	}
	snapshot := make([]models.Message, len(room.history))
	copy(snapshot, room.history)
	return snapshot
}

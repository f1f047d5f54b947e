package chat

import (
	"sync"

	"negochat/internal/models"
)

// Presence maps connection ids to announced user identities. A connection
// that never announced itself cannot send messages.
type Presence struct {
	mu    sync.RWMutex
	users map[string]*models.User
}

func NewPresence() *Presence {
	return &Presence{users: make(map[string]*models.User)}
}

// Register overwrites any prior entry, supporting re-announcement on the
// same connection.
func (p *Presence) Register(connID string, user *models.User) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.users[connID] = user
}

func (p *Presence) Lookup(connID string) (*models.User, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	user, ok := p.users[connID]
	return user, ok
}

func (p *Presence) Unregister(connID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.users, connID)
}

package chat

import (
	"testing"

	"negochat/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresenceRegisterAndLookup(t *testing.T) {
	p := NewPresence()

	_, ok := p.Lookup("conn-1")
	assert.False(t, ok)

	p.Register("conn-1", &models.User{UID: "u1", Username: "alice"})
	user, ok := p.Lookup("conn-1")
	require.True(t, ok)
	assert.Equal(t, "alice", user.Username)
}

func TestPresenceReannouncementOverwrites(t *testing.T) {
	p := NewPresence()

	p.Register("conn-1", &models.User{UID: "u1", Username: "alice"})
	p.Register("conn-1", &models.User{UID: "u1", Username: "alice-renamed"})

	user, ok := p.Lookup("conn-1")
	require.True(t, ok)
	assert.Equal(t, "alice-renamed", user.Username)
}

func TestPresenceUnregister(t *testing.T) {
	p := NewPresence()

	p.Register("conn-1", &models.User{UID: "u1", Username: "alice"})
	p.Unregister("conn-1")

	_, ok := p.Lookup("conn-1")
	assert.False(t, ok)

	p.Unregister("conn-1") // no-op on absent entry
}

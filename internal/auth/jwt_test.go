package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewService("test-secret-key")
	require.True(t, svc.Enabled())

	token, err := svc.GenerateToken("u1", "زائر", true)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UID)
	assert.Equal(t, "زائر", claims.Username)
	assert.True(t, claims.IsGuest)
	assert.Equal(t, "NegoAI", claims.Issuer)
}

func TestValidateRejectsWrongKey(t *testing.T) {
	token, err := NewService("key-one").GenerateToken("u1", "alice", false)
	require.NoError(t, err)

	_, err = NewService("key-two").ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := NewService("test-secret-key")
	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestDisabledServiceRefusesBothDirections(t *testing.T) {
	svc := NewService("")
	assert.False(t, svc.Enabled())

	_, err := svc.GenerateToken("u1", "alice", true)
	assert.ErrorIs(t, err, ErrNoKey)

	_, err = svc.ValidateToken("whatever")
	assert.ErrorIs(t, err, ErrNoKey)
}

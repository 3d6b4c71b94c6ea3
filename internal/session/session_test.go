package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_RevokeAndExpire(t *testing.T) {
	m := NewMemory()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	revoked, err := m.IsRevoked(ctx, "a")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, m.Revoke(ctx, "a", now.Add(time.Hour)))
	revoked, err = m.IsRevoked(ctx, "a")
	require.NoError(t, err)
	assert.True(t, revoked)

	now = now.Add(2 * time.Hour)
	revoked, err = m.IsRevoked(ctx, "a")
	require.NoError(t, err)
	assert.False(t, revoked, "revocation ends with the token's own expiry")
}

func TestMemory_RevokeExpiredIsNoop(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Revoke(ctx, "old", time.Now().Add(-time.Minute)))
	assert.Empty(t, m.revoked)
}

func TestMemory_SweepsOnRevoke(t *testing.T) {
	m := NewMemory()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, m.Revoke(ctx, "a", now.Add(time.Minute)))
	now = now.Add(time.Hour)
	require.NoError(t, m.Revoke(ctx, "b", now.Add(time.Minute)))

	assert.Len(t, m.revoked, 1)
	assert.Contains(t, m.revoked, "b")
}

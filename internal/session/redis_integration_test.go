//go:build integration

package session

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getTestRedis(t *testing.T) *Redis {
	t.Helper()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set, skipping integration test")
	}

	r, err := NewRedis(context.Background(), RedisConfig{Address: addr})
	if err != nil {
		t.Fatalf("Failed to connect to test redis: %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestIntegration_Redis_Revoke(t *testing.T) {
	r := getTestRedis(t)
	ctx := context.Background()
	id := uuid.NewString()

	revoked, err := r.IsRevoked(ctx, id)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, r.Revoke(ctx, id, time.Now().Add(time.Minute)))
	revoked, err = r.IsRevoked(ctx, id)
	require.NoError(t, err)
	assert.True(t, revoked)

	ttl, err := r.client.TTL(ctx, keyPrefix+id).Result()
	require.NoError(t, err)
	assert.LessOrEqual(t, ttl, time.Minute)
}

func TestIntegration_Redis_RevokeExpired(t *testing.T) {
	r := getTestRedis(t)
	ctx := context.Background()
	id := uuid.NewString()

	require.NoError(t, r.Revoke(ctx, id, time.Now().Add(-time.Second)))
	revoked, err := r.IsRevoked(ctx, id)
	require.NoError(t, err)
	assert.False(t, revoked)
}

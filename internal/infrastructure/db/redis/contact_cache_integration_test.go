package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repertoire/contacts-api/internal/core/domain"
)

func TestContactCacheIntegration(t *testing.T) {
	if os.Getenv("RUN_REDIS_INTEGRATION") != "true" {
		t.Skip("set RUN_REDIS_INTEGRATION=true to run this integration test")
	}

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	ctx := context.Background()
	client, err := Connect(ctx, Config{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	cache := NewContactCache(client, time.Minute)
	userID := time.Now().UnixNano()
	t.Cleanup(func() { _ = client.Del(ctx, cache.listKey(userID), cache.versionKey(userID)).Err() })

	_, version, ok, err := cache.Get(ctx, userID)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, version)

	want := []domain.Person{
		{ID: 1, LastName: "Martin", FirstName: "Anna", Telephone: "0611111111", UserID: userID},
		{ID: 2, LastName: "Durand", FirstName: "Bob", Telephone: "0622222222", UserID: userID},
	}
	require.NoError(t, cache.Set(ctx, userID, version, want))

	got, _, ok, err := cache.Get(ctx, userID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)

	require.NoError(t, cache.Invalidate(ctx, userID))
	_, next, ok, err := cache.Get(ctx, userID)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, version+1, next)

	require.NoError(t, cache.Ping(ctx))
}

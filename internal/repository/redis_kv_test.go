package repository

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisKVKey(t *testing.T) {
	kv := NewRedisKV(nil, "")
	assert.Equal(t, "dailytasks:tg:7:streak", kv.key("tg:7", "streak"))
}

func TestRedisKVRoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()
	client, err := NewRedisClient(ctx, addr, os.Getenv("REDIS_PASSWORD"), 0)
	require.NoError(t, err)
	defer client.Close()

	store := NewRedisKV(client, "dailytasks-test").ForNamespace(uuid.NewString())

	_, ok, err := store.Get(ctx, "score")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "score", []byte("70")))
	v, ok, err := store.Get(ctx, "score")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "70", string(v))

	require.NoError(t, store.Delete(ctx, "score"))
	_, ok, err = store.Get(ctx, "score")
	require.NoError(t, err)
	assert.False(t, ok)
}

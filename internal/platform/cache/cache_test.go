// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cache_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/characters-gateway/internal/platform/cache"
	redisstore "github.com/taibuivan/characters-gateway/internal/platform/redis"
)

/*
TestMemory_SetGet verifies values round-trip and honour deletion.
*/
func TestMemory_SetGet(t *testing.T) {
	ctx := context.Background()
	store, err := cache.NewMemory(1<<20, "test:")
	require.NoError(t, err)
	defer store.Close()

	_, found, err := store.Get(ctx, "resp:abc")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "resp:abc", []byte(`{"data":{"hello":"hi"}}`), time.Minute))

	value, found, err := store.Get(ctx, "resp:abc")
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `{"data":{"hello":"hi"}}`, string(value))

	require.NoError(t, store.Delete(ctx, "resp:abc"))
	_, found, _ = store.Get(ctx, "resp:abc")
	assert.False(t, found)
}

/*
TestMemory_ZeroTTLIsNotStored verifies uncacheable entries never land.
*/
func TestMemory_ZeroTTLIsNotStored(t *testing.T) {
	ctx := context.Background()
	store, err := cache.NewMemory(1<<20, "test:")
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Set(ctx, "resp:zero", []byte("x"), 0))

	_, found, err := store.Get(ctx, "resp:zero")
	require.NoError(t, err)
	assert.False(t, found)
}

/*
TestNoop_NeverHits verifies the disabled backend.
*/
func TestNoop_NeverHits(t *testing.T) {
	ctx := context.Background()
	store := cache.NewNoop()

	require.NoError(t, store.Set(ctx, "k", []byte("v"), time.Hour))
	_, found, err := store.Get(ctx, "k")

	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, "none", store.Name())
}

/*
TestRedis_UnreachableServer verifies connectivity errors surface with context
while zero TTL writes never reach the server.
*/
func TestRedis_UnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	store := cache.NewRedis(client, "test:")
	ctx := context.Background()

	_, found, err := store.Get(ctx, "k")
	require.Error(t, err)
	assert.False(t, found)
	assert.Contains(t, err.Error(), "redis_cache_get_failed")

	assert.NoError(t, store.Set(ctx, "k", []byte("v"), 0))
	assert.Error(t, store.Ping(ctx))
	assert.Equal(t, "redis", store.Name())
}

/*
TestRedis_RoundTrip runs the store against an in-process Redis server.
*/
func TestRedis_RoundTrip(t *testing.T) {
	server := miniredis.RunT(t)
	ctx := context.Background()

	client, err := redisstore.NewClient(ctx, redisstore.Options{
		Host:           server.Host(),
		Port:           server.Port(),
		ConnectTimeout: time.Second,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	store := cache.NewRedis(client, "test:")

	value, found, err := store.Get(ctx, "apq:abc")
	require.NoError(t, err, "a missing key is a miss, not an error")
	assert.False(t, found)
	assert.Nil(t, value)

	require.NoError(t, store.Set(ctx, "apq:abc", []byte("{ hello }"), time.Minute))
	assert.True(t, server.Exists("test:apq:abc"))
	assert.Equal(t, time.Minute, server.TTL("test:apq:abc"))

	value, found, err = store.Get(ctx, "apq:abc")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("{ hello }"), value)

	require.NoError(t, store.Delete(ctx, "apq:abc"))
	_, found, err = store.Get(ctx, "apq:abc")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "resp:1", []byte("{}"), time.Second))
	server.FastForward(2 * time.Second)
	_, found, err = store.Get(ctx, "resp:1")
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, store.Ping(ctx))
}

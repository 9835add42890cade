// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	redisstore "github.com/taibuivan/characters-gateway/internal/platform/redis"
)

// Redis implements [Cache] on a shared Redis server.
type Redis struct {
	client    *redis.Client
	namespace string
}

// NewRedis wraps an already connected client.
func NewRedis(client *redis.Client, namespace string) *Redis {
	return &Redis{client: client, namespace: namespace}
}

/*
Get retrieves the value stored under key.

Returns:
  - []byte: Stored value, nil on miss
  - bool: Whether the key was present
  - error: Connectivity errors (a miss is not an error)
*/
func (store *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := store.client.Get(ctx, store.namespace+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis_cache_get_failed: %w", err)
	}
	return value, true, nil
}

// Set stores value with a TTL.
func (store *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := store.client.Set(ctx, store.namespace+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis_cache_set_failed: %w", err)
	}
	return nil
}

// Delete removes key from Redis.
func (store *Redis) Delete(ctx context.Context, key string) error {
	if err := store.client.Del(ctx, store.namespace+key).Err(); err != nil {
		return fmt.Errorf("redis_cache_delete_failed: %w", err)
	}
	return nil
}

// Ping checks connectivity with the shared timeout.
func (store *Redis) Ping(ctx context.Context) error {
	return redisstore.Ping(ctx, store.client)
}

// Name identifies the backend.
func (store *Redis) Name() string { return "redis" }

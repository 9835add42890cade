// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// Memory implements [Cache] with a process-local ristretto cache.
//
// Cost is the value size in bytes, so maxCost bounds memory use.
type Memory struct {
	cache     *ristretto.Cache[string, []byte]
	namespace string
}

// NewMemory creates an in-memory cache holding at most maxCost bytes of values.
func NewMemory(maxCost int64, namespace string) (*Memory, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		// Roughly ten counters per expected entry of ~1KiB.
		NumCounters: max(maxCost/100, 1000),
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("cache: create ristretto cache: %w", err)
	}
	return &Memory{cache: cache, namespace: namespace}, nil
}

func (store *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	value, found := store.cache.Get(store.namespace + key)
	return value, found, nil
}

// Set admits value with a TTL. Writes are applied asynchronously by ristretto;
// Wait is called so that a following Get observes the value.
func (store *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	store.cache.SetWithTTL(store.namespace+key, value, int64(len(value)), ttl)
	store.cache.Wait()
	return nil
}

func (store *Memory) Delete(_ context.Context, key string) error {
	store.cache.Del(store.namespace + key)
	return nil
}

func (store *Memory) Ping(context.Context) error { return nil }

func (store *Memory) Name() string { return "memory" }

// Close stops the ristretto background goroutines.
func (store *Memory) Close() {
	store.cache.Close()
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cache provides the key/value backends used for response caching and
persisted queries.

The gateway treats the backend as a black box supporting get/set with TTL.
Three implementations are selectable through configuration:

  - [Redis]: shared across replicas (go-redis).
  - [Memory]: process-local, cost-bounded (ristretto).
  - [Noop]: caching disabled.

Every implementation prefixes keys with a namespace so a shared Redis can host
other tenants.
*/
package cache

import (
	"context"
	"time"
)

// Cache is the black-box store consumed by the GraphQL handler.
type Cache interface {
	// Get returns the value and true, or nil and false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value for ttl. A non-positive ttl is a no-op.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key if present.
	Delete(ctx context.Context, key string) error

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error

	// Name identifies the backend in logs and readiness checks.
	Name() string
}

// Noop never stores anything.
type Noop struct{}

// NewNoop returns a disabled cache.
func NewNoop() Noop { return Noop{} }

func (Noop) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (Noop) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (Noop) Delete(context.Context, string) error                     { return nil }
func (Noop) Ping(context.Context) error                               { return nil }
func (Noop) Name() string                                             { return "none" }

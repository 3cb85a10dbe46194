// Package cache defines the volatile key/value store used to accelerate
// reads of user and task records, together with its redis-backed and
// in-process implementations.
//
// Implementations are byte-for-byte transparent: Get returns exactly the
// []byte previously passed to Set for the same key, with no prepended
// metadata and no re-encoding. Values may disappear at any time (TTL expiry,
// eviction, restart); callers must treat every miss as a normal condition
// and fall back to the durable store.
//
// This package owns the two key schemes of the application,
// "user:<username>" and "task:<id>". Eviction ordering and cross-entity
// cascades are the responsibility of the service layer, not of the cache.
package cache

import (
	"context"
	"strconv"
	"time"
)

// DefaultTTL bounds the lifetime of a cache entry when no TTL is configured.
// A bounded TTL guarantees that a stale entry left behind by a crash between
// a durable write and its invalidation eventually self-heals.
const DefaultTTL = time.Hour

// Cache is a minimal byte store with TTLs. Implementations must be safe for
// concurrent use.
type Cache interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, it returns (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value with the given TTL. A non-positive TTL selects
	// the implementation default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Del removes a key. Deleting an absent key is not an error.
	Del(ctx context.Context, key string) error

	// Close releases resources.
	Close() error
}

// UserKey returns the cache key for a user record.
func UserKey(username string) string {
	return "user:" + username
}

// TaskKey returns the cache key for a task record.
func TaskKey(id int64) string {
	return "task:" + strconv.FormatInt(id, 10)
}

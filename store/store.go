// Package store defines the primitive key-value store consumed by tagcache.
//
// Implementations must be safe for concurrent use and byte-for-byte
// transparent: Get must return exactly the []byte previously passed to Set
// for the same key. Set-valued keys (reference sets) are owned by tagcache;
// external code must not write under the configured tag prefix.
package store

import (
	"context"
	"time"
)

// SetAdd is one set-union addition inside a batch.
type SetAdd struct {
	Set     string
	Members []string
}

// Store is a minimal byte store with TTLs, counters and unordered sets.
type Store interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// IO/remote errors are returned verbatim.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value with the given TTL. ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// IncrBy / DecrBy adjust an integer entry, creating it at zero when
	// missing, and return the new value.
	IncrBy(ctx context.Context, key string, delta int64) (int64, error)
	DecrBy(ctx context.Context, key string, delta int64) (int64, error)

	// Del removes keys and returns how many existed. Deleting a missing key
	// is not an error.
	Del(ctx context.Context, keys ...string) (int64, error)

	// SAdd adds members to an unordered set, creating it when missing, and
	// returns how many were newly added. Must be atomic per call.
	SAdd(ctx context.Context, set string, members ...string) (int64, error)

	// SMembers returns all members of a set; a missing set is empty.
	SMembers(ctx context.Context, set string) ([]string, error)

	// SAddBatch applies all additions in a single round trip against the
	// store. The store may apply a subset when the batch fails mid-way.
	SAddBatch(ctx context.Context, adds []SetAdd) error

	// Clear removes everything in the store's keyspace.
	Clear(ctx context.Context) error

	// Close releases resources.
	Close(ctx context.Context) error
}

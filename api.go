package tagcache

import (
	"context"
	"time"

	c "github.com/unkn0wn-root/tagcache/codec"
	st "github.com/unkn0wn-root/tagcache/store"
)

// Cache is the root, store-agnostic entry point. Obtain a Tagged view for a
// tag combination and operate through it. V is the caller's value type;
// serialization is handled by a pluggable Codec[V].
type Cache[V any] interface {
	// Tagged returns a view scoped to the given tags using the default
	// resolver (sorted, deduplicated tag names joined by "|").
	Tagged(tags ...string) Tagged[V]

	// TaggedWith returns a view scoped by a caller-supplied Resolver.
	TaggedWith(r Resolver) Tagged[V]

	Enabled() bool
	Close(context.Context) error
}

// Tagged operates on entries under one tag namespace. Every write records
// the entry in the namespace's reference sets so Flush can find it later.
type Tagged[V any] interface {
	Get(ctx context.Context, key string) (v V, ok bool, err error)

	// Set stores value under key. ttl > 0 indexes the entry in the standard
	// partition; ttl <= 0 stores without expiry and indexes it as forever.
	Set(ctx context.Context, key string, value V, ttl time.Duration) error

	// SetForever is Set without a TTL.
	SetForever(ctx context.Context, key string, value V) error

	// Increment and Decrement adjust a counter entry. Counters are always
	// indexed in the standard partition regardless of how the key was first
	// written, so only standard-class flushes sweep them.
	Increment(ctx context.Context, key string, delta int64) (int64, error)
	Decrement(ctx context.Context, key string, delta int64) (int64, error)

	// Flush deletes every entry indexed under this namespace (both
	// partitions), removes the reference sets, and finally clears the
	// primitive store unless Options.SkipStoreClear is set. A failed Flush
	// leaves a well-defined partial state; re-invoking it is safe.
	Flush(ctx context.Context) error
}

// Options tune the cache. Store, Codec and KeyPrefix are required; the rest
// have sensible defaults.
type Options[V any] struct {
	// Required
	Store     st.Store
	Codec     c.Codec[V]
	KeyPrefix string // applied to every entry key; isolates cache instances

	TagPrefix         string // reference-set key prefix; "" => KeyPrefix + "tag:"
	Logger            Logger // nil => NopLogger
	Hooks             Hooks  // nil => NopHooks
	ChunkSize         int    // keys per delete operation during flush; 0 => 1000
	DeleteConcurrency int    // in-flight chunk deletes per reference set; 0 => 100
	SkipStoreClear    bool   // suppress the store-wide clear at the end of Flush
	Disabled          bool   // default false (enabled)
}

func New[V any](opts Options[V]) (Cache[V], error) {
	return newCache[V](opts)
}

package tagcache

import (
	"context"
	"fmt"

	c "github.com/unkn0wn-root/tagcache/codec"
	st "github.com/unkn0wn-root/tagcache/store"
)

const (
	defaultChunkSize         = 1000
	defaultDeleteConcurrency = 100
)

type cache[V any] struct {
	store     st.Store
	codec     c.Codec[V]
	keyPrefix string
	tagPrefix string
	log       Logger
	hooks     Hooks
	enabled   bool

	chunkSize      int
	deleteConc     int
	skipStoreClear bool
}

func newCache[V any](opts Options[V]) (*cache[V], error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("tagcache: store is required")
	}
	if opts.Codec == nil {
		return nil, fmt.Errorf("tagcache: codec is required")
	}
	if opts.KeyPrefix == "" {
		return nil, fmt.Errorf("tagcache: key prefix is required")
	}
	if opts.ChunkSize < 0 || opts.DeleteConcurrency < 0 {
		return nil, fmt.Errorf("tagcache: chunk size and delete concurrency must be non-negative")
	}

	ca := &cache[V]{
		store:          opts.Store,
		codec:          opts.Codec,
		keyPrefix:      opts.KeyPrefix,
		enabled:        !opts.Disabled,
		skipStoreClear: opts.SkipStoreClear,
	}

	// defaults
	ca.tagPrefix = coalesce[string](opts.TagPrefix, opts.KeyPrefix+"tag:")
	ca.log = coalesce[Logger](opts.Logger, NopLogger{})
	ca.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	ca.chunkSize = coalesce[int](opts.ChunkSize, defaultChunkSize)
	ca.deleteConc = coalesce[int](opts.DeleteConcurrency, defaultDeleteConcurrency)

	return ca, nil
}

func (ca *cache[V]) Enabled() bool { return ca.enabled }

func (ca *cache[V]) Close(ctx context.Context) error {
	if ca.store != nil {
		return ca.store.Close(ctx)
	}
	return nil
}

func (ca *cache[V]) Tagged(tags ...string) Tagged[V] {
	return &tagged[V]{ca: ca, res: NewTagSet(tags...)}
}

func (ca *cache[V]) TaggedWith(r Resolver) Tagged[V] {
	return &tagged[V]{ca: ca, res: r}
}

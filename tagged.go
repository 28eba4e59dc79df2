package tagcache

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/unkn0wn-root/tagcache/internal/util"
)

// tagged is a view of one cache scoped to a tag namespace. Views are cheap;
// build one per tag combination as needed.
type tagged[V any] struct {
	ca  *cache[V]
	res Resolver
}

func (t *tagged[V]) namespace(ctx context.Context) (string, error) {
	ns, err := t.res.Namespace(ctx)
	if err == nil && ns == "" {
		err = ErrEmptyNamespace
	}
	if err != nil {
		t.ca.hooks.ResolveError(err)
		return "", &ResolveError{Err: err}
	}
	return ns, nil
}

func (t *tagged[V]) Get(ctx context.Context, key string) (V, bool, error) {
	var zero V
	if !t.ca.enabled {
		return zero, false, nil
	}
	ns, err := t.namespace(ctx)
	if err != nil {
		return zero, false, err
	}
	ek := util.EntryKey(t.ca.keyPrefix, ns, key)
	raw, ok, err := t.ca.store.Get(ctx, ek)
	if err != nil || !ok {
		return zero, false, err
	}
	v, err := t.ca.codec.Decode(raw)
	if err != nil {
		// self-heal: drop undecodable entry, report a miss
		_, _ = t.ca.store.Del(ctx, ek)
		t.ca.hooks.SelfHeal(ek, "value_decode")
		return zero, false, nil
	}
	return v, true, nil
}

func (t *tagged[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	if !t.ca.enabled {
		return nil
	}
	ns, err := t.namespace(ctx)
	if err != nil {
		return err
	}
	payload, err := t.ca.codec.Encode(value)
	if err != nil {
		return err
	}

	class := Forever
	if ttl > 0 {
		class = Standard
	}
	ek := util.EntryKey(t.ca.keyPrefix, ns, key)

	// index add and primitive write run concurrently; both must succeed.
	// No shared context cancellation: a failed sibling does not abort the
	// other, the first error is reported.
	var g errgroup.Group
	g.Go(func() error { return t.ca.index(ctx, ns, key, class) })
	g.Go(func() error { return t.ca.store.Set(ctx, ek, payload, ttl) })
	return g.Wait()
}

func (t *tagged[V]) SetForever(ctx context.Context, key string, value V) error {
	return t.Set(ctx, key, value, 0)
}

func (t *tagged[V]) Increment(ctx context.Context, key string, delta int64) (int64, error) {
	return t.adjust(ctx, key, delta, t.ca.store.IncrBy)
}

func (t *tagged[V]) Decrement(ctx context.Context, key string, delta int64) (int64, error) {
	return t.adjust(ctx, key, delta, t.ca.store.DecrBy)
}

// adjust indexes the counter as Standard (its TTL state is not tracked
// across increments) and applies the store-native adjustment concurrently.
func (t *tagged[V]) adjust(
	ctx context.Context,
	key string,
	delta int64,
	op func(context.Context, string, int64) (int64, error),
) (int64, error) {
	if !t.ca.enabled {
		return 0, nil
	}
	ns, err := t.namespace(ctx)
	if err != nil {
		return 0, err
	}
	ek := util.EntryKey(t.ca.keyPrefix, ns, key)

	var n int64
	var g errgroup.Group
	g.Go(func() error { return t.ca.index(ctx, ns, key, Standard) })
	g.Go(func() error {
		var opErr error
		n, opErr = op(ctx, ek, delta)
		return opErr
	})
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return n, nil
}

func (t *tagged[V]) Flush(ctx context.Context) error {
	if !t.ca.enabled {
		return nil
	}
	ns, err := t.namespace(ctx)
	if err != nil {
		return err
	}
	return t.ca.flushNamespace(ctx, ns)
}

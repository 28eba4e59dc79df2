package tagcache

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/unkn0wn-root/tagcache/internal/util"
)

// deleteIndexed drains one reference set: read full membership, dedup,
// delete in bounded chunks with bounded parallelism. A missing set is empty.
// The reference key itself is left for the caller - it must only disappear
// once every member deletion provably completed.
func (ca *cache[V]) deleteIndexed(ctx context.Context, referenceKey string) error {
	members, err := ca.store.SMembers(ctx, referenceKey)
	if err != nil {
		return &DeleteError{ReferenceKey: referenceKey, Err: err}
	}
	if len(members) == 0 {
		return nil
	}

	// defensive: the store's set is already deduplicated, but upstream may
	// concatenate memberships before handing them to the store
	seen := make(map[string]struct{}, len(members))
	unique := members[:0]
	for _, m := range members {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		unique = append(unique, m)
	}

	var g errgroup.Group
	g.SetLimit(ca.deleteConc)
	for start := 0; start < len(unique); start += ca.chunkSize {
		chunk := unique[start:min(start+ca.chunkSize, len(unique))]
		g.Go(func() error {
			if _, err := ca.store.Del(ctx, chunk...); err != nil {
				ca.hooks.ChunkDeleteError(referenceKey, len(chunk), err)
				return &DeleteError{ReferenceKey: referenceKey, Keys: len(chunk), Err: err}
			}
			return nil
		})
	}
	// already-issued chunk deletes run to completion; first error wins
	return g.Wait()
}

// flushClass deletes every entry indexed under namespace for one expiration
// class, then drops the class's reference sets in a single store operation.
// On any member-deletion failure the reference keys stay so a retried flush
// can finish the cleanup.
func (ca *cache[V]) flushClass(ctx context.Context, namespace string, class ExpirationClass) error {
	segments := util.Segments(namespace)
	refKeys := make([]string, len(segments))
	for i, seg := range segments {
		refKeys[i] = util.ReferenceKey(ca.tagPrefix, seg, class.token())
	}

	var g errgroup.Group
	for _, rk := range refKeys {
		rk := rk
		g.Go(func() error { return ca.deleteIndexed(ctx, rk) })
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if _, err := ca.store.Del(ctx, refKeys...); err != nil {
		return &DeleteError{ReferenceKey: refKeys[0], Keys: len(refKeys), Err: err}
	}

	ca.log.Debug("flushed expiration class", Fields{
		"namespace": namespace,
		"class":     class.String(),
		"refKeys":   len(refKeys),
	})
	return nil
}

// flushNamespace cleans both expiration classes concurrently. Each class
// completes even when the other fails. The primitive store-wide clear runs
// only after both succeeded - wiping unindexed data while an index class is
// known inconsistent would lose the only record of what remains.
func (ca *cache[V]) flushNamespace(ctx context.Context, namespace string) error {
	var g errgroup.Group
	g.Go(func() error { return ca.flushClass(ctx, namespace, Forever) })
	g.Go(func() error { return ca.flushClass(ctx, namespace, Standard) })
	if err := g.Wait(); err != nil {
		ca.hooks.StoreClearSkipped(namespace, err)
		return err
	}

	if ca.skipStoreClear {
		return nil
	}
	return ca.store.Clear(ctx)
}

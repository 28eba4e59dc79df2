package tagcache

import (
	"context"

	"github.com/unkn0wn-root/tagcache/internal/util"
	st "github.com/unkn0wn-root/tagcache/store"
)

// index records an entry in the reference set of every namespace segment for
// the given class. All additions go out as one batch (a single round trip),
// so a crash mid-call cannot leave a per-segment loop half-applied on our
// side. The store may still apply a subset when the batch itself fails;
// indexing is at-least-once and set adds are idempotent.
func (ca *cache[V]) index(ctx context.Context, namespace, key string, class ExpirationClass) error {
	member := util.EntryKey(ca.keyPrefix, namespace, key)
	segments := util.Segments(namespace)

	adds := make([]st.SetAdd, 0, len(segments))
	for _, seg := range segments {
		adds = append(adds, st.SetAdd{
			Set:     util.ReferenceKey(ca.tagPrefix, seg, class.token()),
			Members: []string{member},
		})
	}

	if err := ca.store.SAddBatch(ctx, adds); err != nil {
		ca.hooks.IndexError(namespace, member, err)
		return &IndexError{Namespace: namespace, Key: key, Err: err}
	}

	ca.log.Debug("indexed entry", Fields{
		"namespace": namespace,
		"key":       key,
		"class":     class.String(),
		"segments":  len(segments),
	})
	return nil
}

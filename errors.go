package tagcache

import (
	"errors"
	"fmt"
)

// ErrEmptyNamespace is returned (wrapped in a ResolveError) when a resolver
// yields an empty namespace, e.g. a zero TagSet.
var ErrEmptyNamespace = errors.New("empty tag namespace")

// IndexError reports a failed reference-set batch add. The primitive value
// write succeeds or fails independently; an entry whose indexing failed is
// still correct data, it just won't be swept by a later tag flush.
type IndexError struct {
	Namespace string
	Key       string
	Err       error
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("tagcache: index %q under %q: %v", e.Key, e.Namespace, e.Err)
}

func (e *IndexError) Unwrap() error { return e.Err }

// DeleteError reports a failed deletion during flush. When any chunk of a
// reference set fails, the set's reference key is kept so a retried flush
// still finds the remaining members.
type DeleteError struct {
	ReferenceKey string
	Keys         int // keys in the failed operation; 0 when unknown
	Err          error
}

func (e *DeleteError) Error() string {
	if e.Keys > 0 {
		return fmt.Sprintf("tagcache: delete %d indexed keys of %q: %v", e.Keys, e.ReferenceKey, e.Err)
	}
	return fmt.Sprintf("tagcache: delete indexed keys of %q: %v", e.ReferenceKey, e.Err)
}

func (e *DeleteError) Unwrap() error { return e.Err }

// ResolveError reports that the tag namespace resolver failed; the operation
// that needed the namespace was not attempted.
type ResolveError struct {
	Err error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("tagcache: resolve namespace: %v", e.Err)
}

func (e *ResolveError) Unwrap() error { return e.Err }

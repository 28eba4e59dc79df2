package tagcache

import (
	"context"
	"slices"
	"strings"

	"github.com/unkn0wn-root/tagcache/internal/util"
)

// Resolver produces the tag namespace a Tagged view operates under. The
// namespace must be deterministic for a given tag set: two resolvers built
// from the same tags (any order) must yield the same segment set.
type Resolver interface {
	Namespace(ctx context.Context) (string, error)
}

// TagSet is the default Resolver: tag names sorted, deduplicated and joined
// by "|". The zero value resolves to an empty namespace and is rejected by
// the cache.
type TagSet struct {
	names []string
}

var _ Resolver = TagSet{}

func NewTagSet(names ...string) TagSet {
	s := make([]string, len(names))
	copy(s, names)
	slices.Sort(s)
	s = slices.Compact(s)
	return TagSet{names: s}
}

// Names returns the normalized tag names (sorted, unique).
func (t TagSet) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

func (t TagSet) Namespace(context.Context) (string, error) {
	return strings.Join(t.names, util.Delimiter), nil
}

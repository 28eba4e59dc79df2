package tagcache

// Hooks are lightweight callbacks for high-signal events. Implementations
// MUST be cheap and non-blocking; the cache calls them on hot paths. Use
// hooks/async to decouple slow sinks.
type Hooks interface {
	// The reference-set batch add for a write failed.
	IndexError(namespace, entryKey string, err error)

	// One chunk delete failed while draining a reference set.
	// size is the number of keys in the failed chunk.
	ChunkDeleteError(referenceKey string, size int, err error)

	// The namespace resolver failed; the operation was not attempted.
	ResolveError(err error)

	// An entry was deleted by the cache on read.
	// reason ∈ {"value_decode"}
	SelfHeal(entryKey, reason string)

	// Flush finished index cleanup with an error, so the store-wide clear
	// was not invoked.
	StoreClearSkipped(namespace string, err error)
}

// NopHooks is the default no-op.
type NopHooks struct{}

func (NopHooks) IndexError(string, string, error)    {}
func (NopHooks) ChunkDeleteError(string, int, error) {}
func (NopHooks) ResolveError(error)                  {}
func (NopHooks) SelfHeal(string, string)             {}
func (NopHooks) StoreClearSkipped(string, error)     {}

// Package asynchook decouples slow hook sinks from cache hot paths. Events
// are queued to a bounded channel and delivered by worker goroutines; when
// the queue is full the event is dropped rather than blocking the caller.
package asynchook

import (
	"sync"

	"github.com/unkn0wn-root/tagcache"
)

type Hooks struct {
	inner tagcache.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ tagcache.Hooks = (*Hooks)(nil)

func New(inner tagcache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains the queue and stops the workers. Events emitted after Close
// panic; close the cache first.
func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) IndexError(ns, key string, err error) {
	h.try(func() { h.inner.IndexError(ns, key, err) })
}

func (h *Hooks) ChunkDeleteError(refKey string, size int, err error) {
	h.try(func() { h.inner.ChunkDeleteError(refKey, size, err) })
}

func (h *Hooks) ResolveError(err error) {
	h.try(func() { h.inner.ResolveError(err) })
}

func (h *Hooks) SelfHeal(key, reason string) {
	h.try(func() { h.inner.SelfHeal(key, reason) })
}

func (h *Hooks) StoreClearSkipped(ns string, err error) {
	h.try(func() { h.inner.StoreClearSkipped(ns, err) })
}

// Package sloghooks is a tagcache.Hooks sink that logs events via log/slog,
// with optional sampling for the noisy ones and key redaction.
//
// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    ChunkDeleteEvery: 10, // sample: ~every 10th chunk-delete error
//	})
//	hooks := asynchook.New(raw, 1, 1000) // optional async fan-out
//	defer hooks.Close()
package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/tagcache"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	ChunkDeleteEvery uint64
	SelfHealEvery    uint64
	// Optional key redactor. Defaults to a SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	chunkCtr    atomic.Uint64
	selfHealCtr atomic.Uint64
}

var _ tagcache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) IndexError(ns, key string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("tagcache.index_error",
		"ns", ns,
		"key", h.redact(key),
		"err", err)
}

func (h *Hooks) ChunkDeleteError(refKey string, size int, err error) {
	if h.l == nil || !sample(h.opts.ChunkDeleteEvery, &h.chunkCtr) {
		return
	}
	h.l.Warn("tagcache.chunk_delete_error",
		"ref_key", refKey,
		"size", size,
		"err", err)
}

func (h *Hooks) ResolveError(err error) {
	if h.l == nil {
		return
	}
	h.l.Error("tagcache.resolve_error", "err", err)
}

func (h *Hooks) SelfHeal(key, reason string) {
	if h.l == nil || !sample(h.opts.SelfHealEvery, &h.selfHealCtr) {
		return
	}
	h.l.Debug("tagcache.self_heal",
		"key", h.redact(key),
		"reason", reason)
}

func (h *Hooks) StoreClearSkipped(ns string, err error) {
	if h.l == nil {
		return
	}
	h.l.Error("tagcache.store_clear_skipped",
		"ns", ns,
		"err", err)
}

// Package bigcache provides an in-process store over allegro/bigcache.
// BigCache does not support per-entry TTLs: every value lives for the global
// LifeWindow, so standard-class entries may outlive their requested TTL by
// up to that window. Prefer the local (ristretto) store when per-entry TTL
// matters. Reference sets and counters live behind a mutex, as bigcache
// stores flat byte values only.
package bigcache

import (
	"context"
	"strconv"
	"sync"
	"time"

	bc "github.com/allegro/bigcache/v3"

	st "github.com/unkn0wn-root/tagcache/store"
)

type BigCache struct {
	c *bc.BigCache

	mu       sync.Mutex
	sets     map[string]map[string]struct{}
	counters map[string]int64
}

var _ st.Store = (*BigCache)(nil)

type Config struct {
	LifeWindow         time.Duration
	CleanWindow        time.Duration
	MaxEntriesInWindow int
	MaxEntrySize       int
	HardMaxCacheSizeMB int // ~ memory limit; 0 = unlimited
}

func New(cfg Config) (*BigCache, error) {
	conf := bc.DefaultConfig(cfg.LifeWindow)
	if cfg.CleanWindow > 0 {
		conf.CleanWindow = cfg.CleanWindow
	}
	if cfg.MaxEntriesInWindow > 0 {
		conf.MaxEntriesInWindow = cfg.MaxEntriesInWindow
	}
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize
	}
	if cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	}
	c, err := bc.New(context.Background(), conf)
	if err != nil {
		return nil, err
	}
	return &BigCache{
		c:        c,
		sets:     make(map[string]map[string]struct{}),
		counters: make(map[string]int64),
	}, nil
}

func (s *BigCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	if n, ok := s.counters[key]; ok {
		s.mu.Unlock()
		return []byte(strconv.FormatInt(n, 10)), true, nil
	}
	s.mu.Unlock()

	b, err := s.c.Get(key)
	if err == bc.ErrEntryNotFound {
		return nil, false, nil
	}
	return b, err == nil, err
}

// Set stores value; the requested TTL is ignored in favor of the global
// LifeWindow (bigcache limitation, see package doc).
func (s *BigCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	return s.c.Set(key, value)
}

func (s *BigCache) IncrBy(_ context.Context, key string, delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[key] += delta
	return s.counters[key], nil
}

func (s *BigCache) DecrBy(ctx context.Context, key string, delta int64) (int64, error) {
	return s.IncrBy(ctx, key, -delta)
}

func (s *BigCache) Del(_ context.Context, keys ...string) (int64, error) {
	var removed int64
	s.mu.Lock()
	for _, k := range keys {
		if _, ok := s.counters[k]; ok {
			delete(s.counters, k)
			removed++
		}
		if _, ok := s.sets[k]; ok {
			delete(s.sets, k)
			removed++
		}
	}
	s.mu.Unlock()
	for _, k := range keys {
		if err := s.c.Delete(k); err == nil {
			removed++
		}
	}
	return removed, nil
}

func (s *BigCache) SAdd(_ context.Context, set string, members ...string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saddLocked(set, members), nil
}

func (s *BigCache) SMembers(_ context.Context, set string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.sets[set]
	out := make([]string, 0, len(m))
	for member := range m {
		out = append(out, member)
	}
	return out, nil
}

func (s *BigCache) SAddBatch(_ context.Context, adds []st.SetAdd) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range adds {
		s.saddLocked(a.Set, a.Members)
	}
	return nil
}

func (s *BigCache) saddLocked(set string, members []string) int64 {
	m, ok := s.sets[set]
	if !ok {
		m = make(map[string]struct{}, len(members))
		s.sets[set] = m
	}
	var added int64
	for _, member := range members {
		if _, ok := m[member]; !ok {
			m[member] = struct{}{}
			added++
		}
	}
	return added
}

func (s *BigCache) Clear(_ context.Context) error {
	s.mu.Lock()
	s.sets = make(map[string]map[string]struct{})
	s.counters = make(map[string]int64)
	s.mu.Unlock()
	return s.c.Reset()
}

func (s *BigCache) Close(_ context.Context) error {
	return s.c.Close()
}

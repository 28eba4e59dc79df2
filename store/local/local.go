// Package local provides an in-process store for tests and single-node
// deployments. Entry values live in a ristretto cache (per-entry TTL);
// reference sets and counters live behind a mutex, standing in for the
// store-native atomic set operations a remote backend provides.
package local

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	rc "github.com/dgraph-io/ristretto"

	st "github.com/unkn0wn-root/tagcache/store"
)

type Local struct {
	values *rc.Cache

	mu       sync.Mutex
	sets     map[string]map[string]struct{}
	counters map[string]int64
}

var _ st.Store = (*Local)(nil)

type Config struct {
	NumCounters int64 // ristretto admission counters; 0 => 1e6
	MaxCost     int64 // total value bytes budget; 0 => 64 MiB
	BufferItems int64 // 0 => 64
}

func New(cfg Config) (*Local, error) {
	if cfg.NumCounters == 0 {
		cfg.NumCounters = 1 << 20
	}
	if cfg.MaxCost == 0 {
		cfg.MaxCost = 64 << 20
	}
	if cfg.BufferItems == 0 {
		cfg.BufferItems = 64
	}
	if cfg.NumCounters < 0 || cfg.MaxCost < 0 || cfg.BufferItems < 0 {
		return nil, errors.New("local store: invalid config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
	})
	if err != nil {
		return nil, err
	}
	return &Local{
		values:   c,
		sets:     make(map[string]map[string]struct{}),
		counters: make(map[string]int64),
	}, nil
}

func (s *Local) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	if n, ok := s.counters[key]; ok {
		s.mu.Unlock()
		return []byte(strconv.FormatInt(n, 10)), true, nil
	}
	s.mu.Unlock()

	v, ok := s.values.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, _ := v.([]byte)
	if b == nil {
		s.values.Del(key)
		return nil, false, nil
	}
	return b, true, nil
}

func (s *Local) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	s.values.SetWithTTL(key, value, int64(len(value)), ttl)
	// ristretto admits writes asynchronously; wait so callers get
	// read-your-writes, which a local store is expected to provide
	s.values.Wait()
	return nil
}

func (s *Local) IncrBy(_ context.Context, key string, delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[key] += delta
	return s.counters[key], nil
}

func (s *Local) DecrBy(ctx context.Context, key string, delta int64) (int64, error) {
	return s.IncrBy(ctx, key, -delta)
}

func (s *Local) Del(_ context.Context, keys ...string) (int64, error) {
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
		s.values.Del(k)
	}
	return removed, nil
}

func (s *Local) SAdd(_ context.Context, set string, members ...string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saddLocked(set, members), nil
}

func (s *Local) SMembers(_ context.Context, set string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.sets[set]
	out := make([]string, 0, len(m))
	for member := range m {
		out = append(out, member)
	}
	return out, nil
}

// SAddBatch applies all additions under one lock acquisition, which makes
// the batch atomic toward concurrent local readers - stronger than the
// contract requires, never weaker.
func (s *Local) SAddBatch(_ context.Context, adds []st.SetAdd) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range adds {
		s.saddLocked(a.Set, a.Members)
	}
	return nil
}

func (s *Local) saddLocked(set string, members []string) int64 {
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

func (s *Local) Clear(_ context.Context) error {
	s.mu.Lock()
	s.sets = make(map[string]map[string]struct{})
	s.counters = make(map[string]int64)
	s.mu.Unlock()
	s.values.Clear()
	return nil
}

func (s *Local) Close(_ context.Context) error {
	s.values.Wait()
	s.values.Close()
	return nil
}

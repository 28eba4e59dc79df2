// Package redis adapts a go-redis client to the tagcache store contract.
// This is the intended production store: SADD is natively atomic, and the
// per-write index batch maps onto one pipelined round trip.
package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	st "github.com/unkn0wn-root/tagcache/store"
)

var ErrNilClient = errors.New("redis store: nil client")

type Redis struct {
	rdb         goredis.UniversalClient
	closeClient bool
}

var _ st.Store = (*Redis)(nil)

type Config struct {
	Client      goredis.UniversalClient
	CloseClient bool // set true only if this store exclusively owns the client
}

func New(cfg Config) (*Redis, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Redis{rdb: cfg.Client, closeClient: cfg.CloseClient}, nil
}

func (s *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := s.rdb.Get(ctx, key).Bytes()
	if err == goredis.Nil {
		return nil, false, nil // miss
	}
	if err != nil {
		return nil, false, err // transport/server error
	}
	return b, true, nil
}

func (s *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = 0 // non-positive TTL means "no expiry" per store contract
	}
	return s.rdb.Set(ctx, key, value, ttl).Err()
}

func (s *Redis) IncrBy(ctx context.Context, key string, delta int64) (int64, error) {
	return s.rdb.IncrBy(ctx, key, delta).Result()
}

func (s *Redis) DecrBy(ctx context.Context, key string, delta int64) (int64, error) {
	return s.rdb.DecrBy(ctx, key, delta).Result()
}

func (s *Redis) Del(ctx context.Context, keys ...string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	return s.rdb.Del(ctx, keys...).Result()
}

func (s *Redis) SAdd(ctx context.Context, set string, members ...string) (int64, error) {
	if len(members) == 0 {
		return 0, nil
	}
	return s.rdb.SAdd(ctx, set, asAny(members)...).Result()
}

func (s *Redis) SMembers(ctx context.Context, set string) ([]string, error) {
	return s.rdb.SMembers(ctx, set).Result()
}

// SAddBatch pipelines all additions into a single round trip. Redis applies
// queued commands independently, so a mid-batch failure may leave a subset
// applied; callers treat indexing as at-least-once.
func (s *Redis) SAddBatch(ctx context.Context, adds []st.SetAdd) error {
	if len(adds) == 0 {
		return nil
	}
	_, err := s.rdb.Pipelined(ctx, func(p goredis.Pipeliner) error {
		for _, a := range adds {
			if len(a.Members) == 0 {
				continue
			}
			p.SAdd(ctx, a.Set, asAny(a.Members)...)
		}
		return nil
	})
	return err
}

func (s *Redis) Clear(ctx context.Context) error {
	return s.rdb.FlushDB(ctx).Err()
}

// Close releases the underlying client only when this store owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (s *Redis) Close(context.Context) error {
	if s.closeClient {
		if err := s.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}

func asAny(members []string) []any {
	out := make([]any, len(members))
	for i, m := range members {
		out[i] = m
	}
	return out
}

package tagcache_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/tagcache"
	"github.com/unkn0wn-root/tagcache/codec"
	redisstore "github.com/unkn0wn-root/tagcache/store/redis"
)

type profile struct {
	Name string `json:"name"`
}

func newRedisCache(t *testing.T, opt func(*tagcache.Options[profile])) (tagcache.Cache[profile], *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	s, err := redisstore.New(redisstore.Config{Client: client, CloseClient: true})
	require.NoError(t, err)

	opts := tagcache.Options[profile]{
		Store:     s,
		Codec:     codec.JSON[profile]{},
		KeyPrefix: "app:",
	}
	if opt != nil {
		opt(&opts)
	}
	cc, err := tagcache.New[profile](opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cc.Close(context.Background()) })
	return cc, mr
}

func TestRedisWriteFlushCycle(t *testing.T) {
	ctx := context.Background()
	cc, mr := newRedisCache(t, nil)

	users := cc.Tagged("users", "premium")
	for i := 0; i < 5; i++ {
		require.NoError(t, users.Set(ctx, fmt.Sprintf("u:%d", i), profile{Name: fmt.Sprint(i)}, time.Minute))
	}
	require.NoError(t, users.SetForever(ctx, "u:pinned", profile{Name: "pinned"}))

	got, ok, err := users.Get(ctx, "u:3")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, profile{Name: "3"}, got)

	// both classes are indexed per segment
	assert.True(t, mr.Exists("app:tag:users:standard_ref"))
	assert.True(t, mr.Exists("app:tag:premium:standard_ref"))
	assert.True(t, mr.Exists("app:tag:users:forever_ref"))

	require.NoError(t, users.Flush(ctx))

	_, ok, err = users.Get(ctx, "u:3")
	require.NoError(t, err)
	assert.False(t, ok, "entry survived flush")
	assert.False(t, mr.Exists("app:tag:users:standard_ref"))
	assert.False(t, mr.Exists("app:tag:users:forever_ref"))
}

func TestRedisFlushSparesOtherNamespaces(t *testing.T) {
	ctx := context.Background()
	cc, mr := newRedisCache(t, func(o *tagcache.Options[profile]) {
		o.SkipStoreClear = true
	})

	users := cc.Tagged("users")
	orders := cc.Tagged("orders")
	require.NoError(t, users.Set(ctx, "u:1", profile{Name: "u"}, time.Minute))
	require.NoError(t, orders.Set(ctx, "o:1", profile{Name: "o"}, time.Minute))

	require.NoError(t, users.Flush(ctx))

	_, ok, err := orders.Get(ctx, "o:1")
	require.NoError(t, err)
	assert.True(t, ok, "unrelated namespace swept")
	assert.True(t, mr.Exists("app:tag:orders:standard_ref"))

	_, ok, err = users.Get(ctx, "u:1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCountersFlushAsStandard(t *testing.T) {
	ctx := context.Background()
	cc, _ := newRedisCache(t, func(o *tagcache.Options[profile]) {
		o.SkipStoreClear = true
	})

	stats := cc.Tagged("stats")
	n, err := stats.Increment(ctx, "hits", 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	n, err = stats.Increment(ctx, "hits", 4)
	require.NoError(t, err)
	assert.EqualValues(t, 5, n)

	require.NoError(t, stats.Flush(ctx))

	n, err = stats.Increment(ctx, "hits", 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n, "counter should restart after flush")
}

func TestRedisChunkedFlushLargeSet(t *testing.T) {
	ctx := context.Background()
	cc, mr := newRedisCache(t, func(o *tagcache.Options[profile]) {
		o.SkipStoreClear = true
		o.ChunkSize = 50
		o.DeleteConcurrency = 8
	})

	users := cc.Tagged("users")
	const n = 230
	for i := 0; i < n; i++ {
		require.NoError(t, users.Set(ctx, fmt.Sprintf("u:%d", i), profile{Name: fmt.Sprint(i)}, time.Minute))
	}

	require.NoError(t, users.Flush(ctx))

	for i := 0; i < n; i += 37 {
		_, ok, err := users.Get(ctx, fmt.Sprintf("u:%d", i))
		require.NoError(t, err)
		assert.False(t, ok, "u:%d survived flush", i)
	}
	assert.False(t, mr.Exists("app:tag:users:standard_ref"))
}

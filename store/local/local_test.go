package local

import (
	"context"
	"sort"
	"sync"
	"testing"

	st "github.com/unkn0wn-root/tagcache/store"
)

func newTestStore(t *testing.T) *Local {
	t.Helper()
	s, err := New(Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestValueRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Fatalf("miss expected before set")
	}
	if err := s.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	b, ok, err := s.Get(ctx, "k")
	if err != nil || !ok || string(b) != "v" {
		t.Fatalf("Get: ok=%v err=%v b=%q", ok, err, b)
	}

	if _, err := s.Del(ctx, "k"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Fatalf("entry survived delete")
	}
}

func TestCountersReadableViaGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if n, _ := s.IncrBy(ctx, "hits", 5); n != 5 {
		t.Fatalf("IncrBy = %d", n)
	}
	if n, _ := s.DecrBy(ctx, "hits", 2); n != 3 {
		t.Fatalf("DecrBy = %d", n)
	}
	b, ok, err := s.Get(ctx, "hits")
	if err != nil || !ok || string(b) != "3" {
		t.Fatalf("counter Get: ok=%v err=%v b=%q", ok, err, b)
	}
}

func TestSetsDeduplicate(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if n, _ := s.SAdd(ctx, "set", "a", "b", "a"); n != 2 {
		t.Fatalf("SAdd added = %d, want 2", n)
	}
	if n, _ := s.SAdd(ctx, "set", "a"); n != 0 {
		t.Fatalf("re-add counted = %d, want 0", n)
	}
	members, _ := s.SMembers(ctx, "set")
	sort.Strings(members)
	if len(members) != 2 || members[0] != "a" || members[1] != "b" {
		t.Fatalf("members = %v", members)
	}
	if members, _ := s.SMembers(ctx, "missing"); len(members) != 0 {
		t.Fatalf("missing set should read empty, got %v", members)
	}
}

func TestSAddBatch(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	err := s.SAddBatch(ctx, []st.SetAdd{
		{Set: "s1", Members: []string{"m"}},
		{Set: "s2", Members: []string{"m"}},
	})
	if err != nil {
		t.Fatalf("SAddBatch: %v", err)
	}
	for _, set := range []string{"s1", "s2"} {
		if members, _ := s.SMembers(ctx, set); len(members) != 1 || members[0] != "m" {
			t.Fatalf("set %q = %v", set, members)
		}
	}
}

func TestConcurrentSAdd(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	const n = 64
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = s.SAdd(ctx, "set", string(rune('a'+i%26))+string(rune('0'+i/26)))
		}(i)
	}
	wg.Wait()

	members, _ := s.SMembers(ctx, "set")
	seen := make(map[string]struct{}, len(members))
	for _, m := range members {
		if _, dup := seen[m]; dup {
			t.Fatalf("duplicate member %q", m)
		}
		seen[m] = struct{}{}
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_ = s.Set(ctx, "k", []byte("v"), 0)
	_, _ = s.SAdd(ctx, "set", "a")
	_, _ = s.IncrBy(ctx, "hits", 1)

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Fatalf("value survived clear")
	}
	if members, _ := s.SMembers(ctx, "set"); len(members) != 0 {
		t.Fatalf("set survived clear")
	}
	if _, ok, _ := s.Get(ctx, "hits"); ok {
		t.Fatalf("counter survived clear")
	}
}

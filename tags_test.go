package tagcache

import (
	"context"
	"testing"
)

func TestTagSetDeterministicNamespace(t *testing.T) {
	ctx := context.Background()

	a, _ := NewTagSet("users", "premium").Namespace(ctx)
	b, _ := NewTagSet("premium", "users").Namespace(ctx)
	if a != b {
		t.Fatalf("namespace depends on tag order: %q vs %q", a, b)
	}
	if a != "premium|users" {
		t.Fatalf("namespace = %q, want %q", a, "premium|users")
	}
}

func TestTagSetDeduplicates(t *testing.T) {
	ts := NewTagSet("users", "users", "premium")
	if got := ts.Names(); len(got) != 2 {
		t.Fatalf("names = %v, want 2 unique", got)
	}
	ns, _ := ts.Namespace(context.Background())
	if ns != "premium|users" {
		t.Fatalf("namespace = %q", ns)
	}
}

func TestTagSetNamesIsACopy(t *testing.T) {
	ts := NewTagSet("b", "a")
	names := ts.Names()
	names[0] = "mutated"
	if got := ts.Names()[0]; got != "a" {
		t.Fatalf("internal names mutated: %q", got)
	}
}

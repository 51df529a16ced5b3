package cache

import (
	"testing"
	"time"
)

func TestGetSet(t *testing.T) {
	c := NewLRUCache[int](2, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Fatalf("empty cache must miss")
	}

	c.Set("a", 1)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("want (1, true), got (%d, %v)", v, ok)
	}

	c.Set("a", 2)
	if v, _ := c.Get("a"); v != 2 {
		t.Fatalf("set must overwrite, got %d", v)
	}
	if c.Size() != 1 {
		t.Fatalf("overwrite must not grow the cache, size %d", c.Size())
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRUCache[string](2, time.Minute)
	c.Set("a", "1")
	c.Set("b", "2")
	c.Get("a") // refresh a, making b the eviction candidate
	c.Set("c", "3")

	if _, ok := c.Get("b"); ok {
		t.Errorf("b must be evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Errorf("a must survive")
	}
	if _, ok := c.Get("c"); !ok {
		t.Errorf("c must survive")
	}
}

func TestTTLExpiry(t *testing.T) {
	c := NewLRUCache[int](4, time.Minute)
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }

	c.Set("a", 1)
	clock = clock.Add(30 * time.Second)
	if _, ok := c.Get("a"); !ok {
		t.Fatalf("fresh entry must hit")
	}

	clock = clock.Add(31 * time.Second)
	if _, ok := c.Get("a"); ok {
		t.Fatalf("expired entry must miss")
	}
	if c.Size() != 0 {
		t.Fatalf("expired entry must be dropped on Get, size %d", c.Size())
	}
}

func TestCleanExpired(t *testing.T) {
	c := NewLRUCache[int](4, time.Minute)
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }

	c.Set("a", 1)
	c.Set("b", 2)
	clock = clock.Add(2 * time.Minute)
	c.Set("c", 3)

	if removed := c.CleanExpired(); removed != 2 {
		t.Fatalf("want 2 removed, got %d", removed)
	}
	if c.Size() != 1 {
		t.Fatalf("want 1 survivor, got %d", c.Size())
	}
}

func TestDelete(t *testing.T) {
	c := NewLRUCache[int](2, time.Minute)
	c.Set("a", 1)
	c.Delete("a")
	c.Delete("a") // absent delete is a no-op
	if _, ok := c.Get("a"); ok {
		t.Fatalf("deleted entry must miss")
	}
}

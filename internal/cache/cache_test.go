package cache

import (
	"context"
	"testing"
	"time"
)

func TestCache_SetGet(t *testing.T) {
	c := New[string, int](0)
	ctx := context.Background()

	c.Set(ctx, "a", 1, time.Minute)
	got, ok := c.Get(ctx, "a")
	if !ok || got != 1 {
		t.Errorf("expected (1, true), got (%d, %v)", got, ok)
	}

	if _, ok := c.Get(ctx, "missing"); ok {
		t.Error("missing key must not be found")
	}
}

func TestCache_Expiry(t *testing.T) {
	c := New[string, string](0)
	ctx := context.Background()

	c.Set(ctx, "k", "v", 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("expired entry must not be returned")
	}
}

func TestCache_JanitorSweeps(t *testing.T) {
	c := New[string, int](10 * time.Millisecond)
	defer c.Stop()
	ctx := context.Background()

	c.Set(ctx, "k", 1, 5*time.Millisecond)

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if c.Len() == 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Error("janitor did not sweep expired entry")
}

func TestCache_ZeroTTLIgnored(t *testing.T) {
	c := New[string, int](0)
	ctx := context.Background()

	c.Set(ctx, "k", 1, 0)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("zero TTL must not store")
	}
}

package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCatalog(t *testing.T) {
	c := NewMemory(0)
	ctx := context.Background()

	var got []string
	if c.Get(ctx, "products", &got) {
		t.Fatal("expected miss on empty cache")
	}

	c.Set(ctx, "products", []string{"a", "b"})
	if !c.Get(ctx, "products", &got) || len(got) != 2 {
		t.Fatalf("expected hit with 2 entries, got %v", got)
	}

	c.Invalidate(ctx, "products")
	if c.Get(ctx, "products", &got) {
		t.Fatal("expected miss after invalidate")
	}
}

func TestNopNeverHits(t *testing.T) {
	var c Catalog = Nop{}
	c.Set(context.Background(), "videos", []int{1})
	var out []int
	if c.Get(context.Background(), "videos", &out) {
		t.Fatal("Nop should never hit")
	}
}

func TestMemoryCatalogExpires(t *testing.T) {
	c := NewMemory(time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	c.Set(ctx, "models", []string{"Sedan"})
	var got []string
	now = now.Add(59 * time.Second)
	if !c.Get(ctx, "models", &got) {
		t.Fatal("expected hit before ttl")
	}
	now = now.Add(time.Second)
	if c.Get(ctx, "models", &got) {
		t.Fatal("expected miss once ttl elapsed")
	}
	if _, ok := c.entries[key("models")]; ok {
		t.Error("expired entry should be dropped")
	}
}

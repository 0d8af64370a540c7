// Package cache keeps rendered-ready catalog listings in Redis between
// admin uploads.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// Catalog caches one JSON listing per collection.
type Catalog interface {
	// Get decodes a cached listing into out. ok is false on a miss.
	Get(ctx context.Context, collection string, out interface{}) (ok bool)
	Set(ctx context.Context, collection string, value interface{})
	Invalidate(ctx context.Context, collection string)
}

func key(collection string) string {
	return "catalog:" + collection
}

// Redis is a Catalog backed by a go-redis client. Failures are logged and
// behave like misses.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (c *Redis) Get(ctx context.Context, collection string, out interface{}) bool {
	raw, err := c.client.Get(ctx, key(collection)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("Error reading %s from Redis: %v", key(collection), err)
		}
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Printf("Error decoding cached %s: %v", key(collection), err)
		return false
	}
	return true
}

func (c *Redis) Set(ctx context.Context, collection string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("Error marshaling %s for Redis: %v", key(collection), err)
		return
	}
	if err := c.client.Set(ctx, key(collection), raw, c.ttl).Err(); err != nil {
		log.Printf("Error setting %s in Redis: %v", key(collection), err)
	}
}

func (c *Redis) Invalidate(ctx context.Context, collection string) {
	if err := c.client.Del(ctx, key(collection)).Err(); err != nil {
		log.Printf("Error invalidating %s in Redis: %v", key(collection), err)
	}
}

// Close closes the Redis connection
func (c *Redis) Close() {
	if err := c.client.Close(); err != nil {
		log.Printf("Error closing Redis: %v", err)
		return
	}
	log.Println("Redis connection closed.")
}

// Nop never hits.
type Nop struct{}

func (Nop) Get(context.Context, string, interface{}) bool {
	return false
}

func (Nop) Set(context.Context, string, interface{}) {}

func (Nop) Invalidate(context.Context, string) {}

type memoryEntry struct {
	raw     []byte
	expires time.Time
}

// Memory is an in-process Catalog, used in tests and by the memory backend.
// Entries expire after ttl; a ttl of zero keeps them until invalidated.
type Memory struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{ttl: ttl, entries: make(map[string]memoryEntry), now: time.Now}
}

func (m *Memory) Get(_ context.Context, collection string, out interface{}) bool {
	m.mu.RLock()
	entry, ok := m.entries[key(collection)]
	m.mu.RUnlock()
	if !ok {
		return false
	}
	if !entry.expires.IsZero() && !m.now().Before(entry.expires) {
		m.mu.Lock()
		if current, ok := m.entries[key(collection)]; ok && current.expires.Equal(entry.expires) {
			delete(m.entries, key(collection))
		}
		m.mu.Unlock()
		return false
	}
	return json.Unmarshal(entry.raw, out) == nil
}

func (m *Memory) Set(_ context.Context, collection string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("Error marshaling %s for cache: %v", key(collection), err)
		return
	}
	entry := memoryEntry{raw: raw}
	if m.ttl > 0 {
		entry.expires = m.now().Add(m.ttl)
	}
	m.mu.Lock()
	m.entries[key(collection)] = entry
	m.mu.Unlock()
}

func (m *Memory) Invalidate(_ context.Context, collection string) {
	m.mu.Lock()
	delete(m.entries, key(collection))
	m.mu.Unlock()
}

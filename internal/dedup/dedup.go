// Package dedup tracks recently seen input files so a re-detected file does
// not double-run the whole pipeline.
package dedup

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Marker records first sightings of input files. MarkIfNew returns true when
// the key was not seen within the retention window and atomically marks it.
type Marker interface {
	MarkIfNew(ctx context.Context, key string) (bool, error)
}

// Key builds the marker key from the facts that identify one upload: the
// same name with a different size is a different upload and runs again.
func Key(name string, size int64) string {
	return fmt.Sprintf("seen:%s:%d", name, size)
}

// redisMarker shares sightings across watcher replicas via SETNX with TTL.
type redisMarker struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisMarker(rdb *redis.Client, ttl time.Duration) Marker {
	return &redisMarker{rdb: rdb, ttl: ttl}
}

func (m *redisMarker) MarkIfNew(ctx context.Context, key string) (bool, error) {
	return m.rdb.SetNX(ctx, key, 1, m.ttl).Result()
}

// memoryMarker is the single-replica fallback when no Redis is configured.
type memoryMarker struct {
	mu   sync.Mutex
	ttl  time.Duration
	seen map[string]time.Time
}

func NewMemoryMarker(ttl time.Duration) Marker {
	return &memoryMarker{ttl: ttl, seen: make(map[string]time.Time)}
}

func (m *memoryMarker) MarkIfNew(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	if expiry, ok := m.seen[key]; ok && now.Before(expiry) {
		return false, nil
	}

	// Opportunistic sweep keeps the map from growing unbounded.
	for k, expiry := range m.seen {
		if now.After(expiry) {
			delete(m.seen, k)
		}
	}

	m.seen[key] = now.Add(m.ttl)
	return true, nil
}

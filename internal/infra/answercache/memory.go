package answercache

import (
	"context"
	"sync"
	"time"

	"github.com/fourp/smartchat/internal/domain/chat"
)

type cachedEntry struct {
	payload   chat.CachedAnswer
	expiresAt time.Time
}

// MemoryCache is an in-process answer cache for tests and single-node runs.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]cachedEntry
}

// NewMemoryCache constructs an empty cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]cachedEntry)}
}

// Get implements chat.AnswerCache.
func (c *MemoryCache) Get(_ context.Context, key string) (chat.CachedAnswer, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return chat.CachedAnswer{}, false, nil
	}
	if hasExpired(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return chat.CachedAnswer{}, false, nil
	}
	return entry.payload, true, nil
}

// Set implements chat.AnswerCache.
func (c *MemoryCache) Set(_ context.Context, key string, answer chat.CachedAnswer, ttl time.Duration) error {
	exp := time.Time{}
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.entries[key] = cachedEntry{payload: answer, expiresAt: exp}
	c.mu.Unlock()
	return nil
}

func hasExpired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(time.Now())
}

var _ chat.AnswerCache = (*MemoryCache)(nil)

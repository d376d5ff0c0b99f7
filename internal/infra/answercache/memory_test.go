package answercache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fourp/smartchat/internal/domain/chat"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	cache := NewMemoryCache()
	entry := chat.CachedAnswer{Answer: "cached", IntentTag: "trust", CreatedAt: time.Now()}

	require.NoError(t, cache.Set(context.Background(), "k", entry, time.Minute))

	got, ok, err := cache.Get(context.Background(), "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "cached", got.Answer)
	require.Equal(t, chat.IntentTag("trust"), got.IntentTag)
}

func TestMemoryCacheMiss(t *testing.T) {
	cache := NewMemoryCache()
	_, ok, err := cache.Get(context.Background(), "missing")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryCacheExpiry(t *testing.T) {
	cache := NewMemoryCache()
	require.NoError(t, cache.Set(context.Background(), "k", chat.CachedAnswer{Answer: "x"}, time.Nanosecond))
	time.Sleep(5 * time.Millisecond)

	_, ok, err := cache.Get(context.Background(), "k")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryCacheZeroTTLNeverExpires(t *testing.T) {
	cache := NewMemoryCache()
	require.NoError(t, cache.Set(context.Background(), "k", chat.CachedAnswer{Answer: "x"}, 0))

	_, ok, err := cache.Get(context.Background(), "k")
	require.NoError(t, err)
	require.True(t, ok)
}

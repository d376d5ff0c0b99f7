package main

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fourp/smartchat/internal/infra/answercache"
	"github.com/fourp/smartchat/internal/infra/config"
	vsmemory "github.com/fourp/smartchat/internal/infra/vectorstore/memory"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProvideAnswerCacheDisabled(t *testing.T) {
	cfg := &config.Config{}
	cfg.Chat.Cache.Enabled = false
	cfg.Chat.Cache.Addr = "localhost:6379"

	require.Nil(t, provideAnswerCache(cfg, newTestLogger()))
}

func TestProvideAnswerCacheEnabledFallsBackToMemory(t *testing.T) {
	cfg := &config.Config{}
	cfg.Chat.Cache.Enabled = true
	// An address nothing listens on: the ping fails and the in-process
	// fallback takes over instead of disabling caching.
	cfg.Chat.Cache.Addr = "127.0.0.1:1"

	cache := provideAnswerCache(cfg, newTestLogger())
	require.NotNil(t, cache)
	require.IsType(t, &answercache.MemoryCache{}, cache)
}

func TestProvideRetrieverDefaultsToMemory(t *testing.T) {
	cfg := &config.Config{}

	retriever := provideRetriever(cfg, newTestLogger())
	require.IsType(t, &vsmemory.Store{}, retriever)
}

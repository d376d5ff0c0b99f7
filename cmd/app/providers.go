package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/fourp/smartchat/internal/domain/chat"
	"github.com/fourp/smartchat/internal/infra/answercache"
	"github.com/fourp/smartchat/internal/infra/config"
	"github.com/fourp/smartchat/internal/infra/llm/chatgpt"
	vsmemory "github.com/fourp/smartchat/internal/infra/vectorstore/memory"
	vspostgres "github.com/fourp/smartchat/internal/infra/vectorstore/postgres"
	"github.com/fourp/smartchat/internal/infra/vectorstore/weaviate"
)

func provideChatConfig(cfg *config.Config) chat.Config {
	return chat.Config{
		Model:           cfg.LLM.Model,
		EmbeddingModel:  cfg.LLM.EmbeddingModel,
		Temperature:     cfg.LLM.Temperature,
		Tenant:          cfg.Chat.Tenant,
		Persona:         cfg.Chat.Persona,
		MaxResponseLen:  cfg.Chat.MaxResponseLen,
		FAQLimit:        cfg.Chat.FAQLimit,
		EstimateLimit:   cfg.Chat.EstimateLimit,
		MaxPromptTokens: cfg.Chat.MaxPromptTokens,
		CacheTTL:        cfg.Chat.Cache.TTL,
	}
}

func provideLLMClient(cfg *config.Config) (*chatgpt.Client, error) {
	return chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL)
}

// provideRetriever picks the retrieval provider: Weaviate when configured,
// then Postgres/pgvector, then the in-memory store.
func provideRetriever(cfg *config.Config, logger *slog.Logger) chat.Retriever {
	if baseURL := strings.TrimSpace(cfg.Retrieval.Weaviate.BaseURL); baseURL != "" {
		client, err := weaviate.NewClient(baseURL, cfg.Retrieval.Weaviate.APIKey, cfg.Retrieval.Weaviate.Timeout)
		if err == nil {
			logger.Info("weaviate retriever enabled", "url", baseURL)
			return client
		}
		logger.Error("weaviate client init failed, trying next provider", "error", err)
	}
	if dsn := strings.TrimSpace(cfg.Retrieval.Postgres.DSN); dsn != "" {
		if pool := newPostgresPool(cfg, logger); pool != nil {
			logger.Info("pgvector retriever enabled")
			return vspostgres.NewStore(pool)
		}
	}
	logger.Info("no retrieval provider configured, using memory store")
	return vsmemory.NewStore()
}

func newPostgresPool(cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	poolConfig, err := pgxpool.ParseConfig(cfg.Retrieval.Postgres.DSN)
	if err != nil {
		logger.Error("invalid postgres dsn", "error", err)
		return nil
	}
	if cfg.Retrieval.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Retrieval.Postgres.MaxConns
	}
	if cfg.Retrieval.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Retrieval.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool", "error", err)
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed", "error", err)
		pool.Close()
		return nil
	}
	return pool
}

// provideAnswerCache returns nil when caching is disabled; the chat service
// treats a nil cache as no caching. The memory fallback only covers an
// enabled cache whose Valkey backend is unreachable.
func provideAnswerCache(cfg *config.Config, logger *slog.Logger) chat.AnswerCache {
	if !cfg.Chat.Cache.Enabled {
		return nil
	}
	opt, err := buildValkeyOptions(cfg.Chat.Cache.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
		return answercache.NewMemoryCache()
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
		return answercache.NewMemoryCache()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory cache", "error", err)
		return answercache.NewMemoryCache()
	}
	logger.Info("valkey answer cache enabled", "addr", cfg.Chat.Cache.Addr)
	return answercache.NewValkeyCache(client, cfg.Chat.Cache.Prefix)
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

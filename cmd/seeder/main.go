package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/fourp/smartchat/internal/domain/seeding"
	"github.com/fourp/smartchat/internal/infra/config"
	"github.com/fourp/smartchat/internal/infra/corpus"
	"github.com/fourp/smartchat/internal/infra/llm/chatgpt"
	vsmemory "github.com/fourp/smartchat/internal/infra/vectorstore/memory"
	vspostgres "github.com/fourp/smartchat/internal/infra/vectorstore/postgres"
	"github.com/fourp/smartchat/internal/infra/vectorstore/weaviate"
	"github.com/fourp/smartchat/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	client, err := chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL)
	if err != nil {
		log.Error("failed to create llm client", "error", err)
		os.Exit(1)
	}

	source, err := provideSource(cfg, log)
	if err != nil {
		log.Error("failed to set up corpus source", "error", err)
		os.Exit(1)
	}

	upserter, err := provideUpserter(ctx, cfg, log)
	if err != nil {
		log.Error("failed to set up seed target", "error", err)
		os.Exit(1)
	}

	data, err := source.Load(ctx)
	if err != nil {
		log.Error("failed to load corpus", "error", err)
		os.Exit(1)
	}

	svc := seeding.NewService(seeding.Config{
		EmbeddingModel: cfg.LLM.EmbeddingModel,
		Tenant:         cfg.Chat.Tenant,
	}, client, upserter, log)

	report, err := svc.Seed(ctx, data)
	for _, recErr := range report.Errors {
		log.Warn("record skipped",
			"class", recErr.Class,
			"key", recErr.Key,
			"error", recErr.Err)
	}
	log.Info("seeding finished",
		"created", report.Created,
		"updated", report.Updated,
		"skipped", report.Skipped,
		"duration", report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond).String())
	if err != nil {
		log.Error("seeding failed", "error", err)
		os.Exit(1)
	}
}

func provideSource(cfg *config.Config, log *slog.Logger) (seeding.Source, error) {
	if endpoint := strings.TrimSpace(cfg.Seed.Bucket.Endpoint); endpoint != "" {
		log.Info("loading corpus from object storage", "endpoint", endpoint, "bucket", cfg.Seed.Bucket.Bucket)
		return corpus.NewBucketSource(
			endpoint,
			cfg.Seed.Bucket.AccessKey,
			cfg.Seed.Bucket.SecretKey,
			cfg.Seed.Bucket.Bucket,
			cfg.Seed.Bucket.Prefix,
			log,
		)
	}
	log.Info("loading corpus from local files", "dir", cfg.Seed.Dir)
	return corpus.NewFileSource(cfg.Seed.Dir), nil
}

func provideUpserter(ctx context.Context, cfg *config.Config, log *slog.Logger) (seeding.Upserter, error) {
	if baseURL := strings.TrimSpace(cfg.Retrieval.Weaviate.BaseURL); baseURL != "" {
		log.Info("seeding into weaviate", "url", baseURL)
		return weaviate.NewClient(baseURL, cfg.Retrieval.Weaviate.APIKey, cfg.Retrieval.Weaviate.Timeout)
	}
	if dsn := strings.TrimSpace(cfg.Retrieval.Postgres.DSN); dsn != "" {
		pool, err := pgxpool.New(ctx, dsn)
		if err != nil {
			return nil, err
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info("seeding into postgres")
		return vspostgres.NewStore(pool), nil
	}
	log.Warn("no retrieval provider configured, seeding into memory store (records will not persist)")
	return vsmemory.NewStore(), nil
}

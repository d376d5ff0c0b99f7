package seeding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fourp/smartchat/internal/infra/llm/chatgpt"
	apperrors "github.com/fourp/smartchat/pkg/errors"
	"github.com/fourp/smartchat/pkg/util"
)

// Source loads a corpus from wherever it lives (local files, object storage).
type Source interface {
	Load(ctx context.Context) (Corpus, error)
}

// Upserter writes a record into the retrieval provider: existence check
// followed by conditional create or update, keyed by the deterministic ID.
type Upserter interface {
	Upsert(ctx context.Context, class string, rec SeedRecord) (created bool, err error)
}

type embeddingClient interface {
	CreateEmbedding(ctx context.Context, req chatgpt.EmbeddingRequest) (chatgpt.EmbeddingResponse, error)
}

// Config holds the seeding knobs.
type Config struct {
	EmbeddingModel string
	Tenant         string
}

// Service runs one-shot corpus seeding passes.
type Service struct {
	cfg      Config
	client   embeddingClient
	upserter Upserter
	logger   *slog.Logger
}

// NewService wires up the seeding job.
func NewService(cfg Config, client embeddingClient, upserter Upserter, logger *slog.Logger) *Service {
	return &Service{
		cfg:      cfg,
		client:   client,
		upserter: upserter,
		logger:   logger.With("component", "seeding.service"),
	}
}

// Seed embeds and upserts every record in the corpus. A malformed record is
// skipped and reported; the batch continues.
func (s *Service) Seed(ctx context.Context, corpus Corpus) (Report, error) {
	report := Report{StartedAt: util.NowUTC()}

	for _, faq := range corpus.FAQs {
		s.seedOne(ctx, &report, ClassFAQ, faq.ExternalID, faq.Question+"::"+faq.Answer, func() (SeedRecord, string, error) {
			if strings.TrimSpace(faq.Question) == "" || strings.TrimSpace(faq.Answer) == "" {
				return SeedRecord{}, "", errors.New("question and answer are required")
			}
			return SeedRecord{
				Fields: map[string]string{
					"question": faq.Question,
					"answer":   faq.Answer,
					"clientId": s.tenantFor(faq.Tenant),
				},
			}, faq.Question, nil
		})
	}

	for _, feature := range corpus.Features {
		s.seedOne(ctx, &report, ClassFeature, feature.ExternalID, feature.Name, func() (SeedRecord, string, error) {
			if strings.TrimSpace(feature.Name) == "" {
				return SeedRecord{}, "", errors.New("name is required")
			}
			return SeedRecord{
				Fields: map[string]string{
					"name":        feature.Name,
					"description": feature.Description,
					"clientId":    s.tenantFor(feature.Tenant),
				},
				Tags: feature.Tags,
			}, feature.Name, nil
		})
	}

	for _, estimate := range corpus.Estimates {
		key := estimate.Category + "::" + estimate.Item
		s.seedOne(ctx, &report, ClassEstimate, estimate.ExternalID, key, func() (SeedRecord, string, error) {
			if strings.TrimSpace(estimate.Item) == "" || strings.TrimSpace(estimate.PriceRange) == "" {
				return SeedRecord{}, "", errors.New("item and priceRange are required")
			}
			embedText := strings.TrimSpace(estimate.Category + " " + estimate.Item + " " + estimate.Description)
			return SeedRecord{
				Fields: map[string]string{
					"category":    estimate.Category,
					"item":        estimate.Item,
					"description": estimate.Description,
					"priceRange":  estimate.PriceRange,
					"clientId":    s.tenantFor(estimate.Tenant),
				},
			}, embedText, nil
		})
	}

	report.FinishedAt = util.NowUTC()
	s.logger.Info("seeding pass finished",
		"created", report.Created,
		"updated", report.Updated,
		"skipped", report.Skipped)

	if report.Upserted() == 0 && report.Skipped > 0 {
		return report, apperrors.Wrap("seed_error", "every record in the corpus was skipped", nil)
	}
	return report, nil
}

// seedOne builds, embeds and upserts a single record, folding any failure
// into the report instead of aborting.
func (s *Service) seedOne(ctx context.Context, report *Report, class, externalID, fallbackKey string, build func() (SeedRecord, string, error)) {
	rec, embedText, err := build()
	if err != nil {
		s.skip(report, class, externalID, fallbackKey, err)
		return
	}

	rec.ID = recordID(class, externalID, fallbackKey)
	rec.Vector, err = s.embed(ctx, embedText)
	if err != nil {
		s.skip(report, class, externalID, fallbackKey, fmt.Errorf("embed: %w", err))
		return
	}

	created, err := s.upserter.Upsert(ctx, class, rec)
	if err != nil {
		s.skip(report, class, externalID, fallbackKey, fmt.Errorf("upsert: %w", err))
		return
	}
	if created {
		report.Created++
	} else {
		report.Updated++
	}
}

func (s *Service) skip(report *Report, class, externalID, fallbackKey string, err error) {
	key := externalID
	if key == "" {
		key = fallbackKey
	}
	report.Skipped++
	report.Errors = append(report.Errors, RecordError{Class: class, Key: key, Err: err})
	s.logger.Warn("seed record skipped", "class", class, "key", key, "error", err)
}

func (s *Service) embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := s.client.CreateEmbedding(ctx, chatgpt.EmbeddingRequest{
		Model: s.cfg.EmbeddingModel,
		Input: text,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, errors.New("embedding response empty")
	}
	vector := make([]float32, len(resp.Data[0].Embedding))
	copy(vector, resp.Data[0].Embedding)
	return vector, nil
}

func (s *Service) tenantFor(recordTenant string) string {
	if strings.TrimSpace(recordTenant) != "" {
		return recordTenant
	}
	return s.cfg.Tenant
}

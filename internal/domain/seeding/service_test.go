package seeding

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fourp/smartchat/internal/infra/llm/chatgpt"
	apperrors "github.com/fourp/smartchat/pkg/errors"
)

type stubEmbedder struct {
	calls int
	fail  bool
}

func (s *stubEmbedder) CreateEmbedding(_ context.Context, _ chatgpt.EmbeddingRequest) (chatgpt.EmbeddingResponse, error) {
	s.calls++
	if s.fail {
		return chatgpt.EmbeddingResponse{}, errors.New("provider down")
	}
	var resp chatgpt.EmbeddingResponse
	resp.Data = append(resp.Data, struct {
		Index     int       `json:"index"`
		Embedding []float32 `json:"embedding"`
	}{Embedding: []float32{0.5, 0.5}})
	return resp, nil
}

type stubUpserter struct {
	records map[string]map[string]SeedRecord
}

func newStubUpserter() *stubUpserter {
	return &stubUpserter{records: map[string]map[string]SeedRecord{}}
}

func (s *stubUpserter) Upsert(_ context.Context, class string, rec SeedRecord) (bool, error) {
	byID, ok := s.records[class]
	if !ok {
		byID = map[string]SeedRecord{}
		s.records[class] = byID
	}
	_, exists := byID[rec.ID]
	byID[rec.ID] = rec
	return !exists, nil
}

func newTestService(embedder *stubEmbedder, upserter Upserter) *Service {
	return NewService(Config{EmbeddingModel: "embed-test", Tenant: "peachstate"},
		embedder, upserter, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testCorpus() Corpus {
	return Corpus{
		FAQs: []FAQRecord{
			{ExternalID: "faq-1", Question: "Are you licensed?", Answer: "Yes."},
		},
		Features: []FeatureRecord{
			{ExternalID: "feat-1", Name: "Same-day dispatch", Tags: []string{"speed"}},
		},
		Estimates: []EstimateRecord{
			{ExternalID: "est-1", Category: "Repairs", Item: "Outlet repair", PriceRange: "$120 - $250"},
		},
	}
}

func TestSeedCreatesAllClasses(t *testing.T) {
	upserter := newStubUpserter()
	svc := newTestService(&stubEmbedder{}, upserter)

	report, err := svc.Seed(context.Background(), testCorpus())
	require.NoError(t, err)
	require.Equal(t, 3, report.Created)
	require.Equal(t, 0, report.Updated)
	require.Equal(t, 0, report.Skipped)
	require.Len(t, upserter.records[ClassFAQ], 1)
	require.Len(t, upserter.records[ClassFeature], 1)
	require.Len(t, upserter.records[ClassEstimate], 1)
}

func TestSeedIsIdempotent(t *testing.T) {
	upserter := newStubUpserter()
	svc := newTestService(&stubEmbedder{}, upserter)

	_, err := svc.Seed(context.Background(), testCorpus())
	require.NoError(t, err)
	report, err := svc.Seed(context.Background(), testCorpus())
	require.NoError(t, err)

	require.Equal(t, 0, report.Created)
	require.Equal(t, 3, report.Updated)
	require.Len(t, upserter.records[ClassFAQ], 1)
	require.Len(t, upserter.records[ClassFeature], 1)
	require.Len(t, upserter.records[ClassEstimate], 1)
}

func TestSeedFillsDefaultTenant(t *testing.T) {
	upserter := newStubUpserter()
	svc := newTestService(&stubEmbedder{}, upserter)

	_, err := svc.Seed(context.Background(), testCorpus())
	require.NoError(t, err)
	for _, rec := range upserter.records[ClassFAQ] {
		require.Equal(t, "peachstate", rec.Fields["clientId"])
	}
}

func TestSeedSkipsMalformedRecords(t *testing.T) {
	corpus := testCorpus()
	corpus.FAQs = append(corpus.FAQs, FAQRecord{ExternalID: "faq-broken", Question: "No answer?"})
	corpus.Estimates = append(corpus.Estimates, EstimateRecord{ExternalID: "est-broken", Item: "Mystery"})

	upserter := newStubUpserter()
	svc := newTestService(&stubEmbedder{}, upserter)

	report, err := svc.Seed(context.Background(), corpus)
	require.NoError(t, err)
	require.Equal(t, 3, report.Created)
	require.Equal(t, 2, report.Skipped)
	require.Len(t, report.Errors, 2)
	require.Equal(t, "faq-broken", report.Errors[0].Key)
	require.Equal(t, "est-broken", report.Errors[1].Key)
}

func TestSeedFailsWhenNothingUpserted(t *testing.T) {
	embedder := &stubEmbedder{fail: true}
	svc := newTestService(embedder, newStubUpserter())

	report, err := svc.Seed(context.Background(), testCorpus())
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "seed_error"))
	require.Equal(t, 3, report.Skipped)
	require.Equal(t, 0, report.Upserted())
}

func TestSeedEmbedsNaturalText(t *testing.T) {
	embedder := &stubEmbedder{}
	svc := newTestService(embedder, newStubUpserter())

	_, err := svc.Seed(context.Background(), testCorpus())
	require.NoError(t, err)
	require.Equal(t, 3, embedder.calls)
}

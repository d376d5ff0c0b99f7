package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/fourp/smartchat/internal/domain/chat"
	"github.com/fourp/smartchat/internal/domain/seeding"
	"github.com/fourp/smartchat/internal/infra/vectorstore"
)

type storedRecord struct {
	fields map[string]string
	tags   []string
	vector []float32
}

// Store is an in-memory retrieval provider for tests and local development.
type Store struct {
	mu      sync.RWMutex
	classes map[string]map[string]storedRecord
}

// NewStore constructs an empty store.
func NewStore() *Store {
	return &Store{classes: make(map[string]map[string]storedRecord)}
}

// Upsert implements seeding.Upserter.
func (s *Store) Upsert(_ context.Context, class string, rec seeding.SeedRecord) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, ok := s.classes[class]
	if !ok {
		records = make(map[string]storedRecord)
		s.classes[class] = records
	}
	_, exists := records[rec.ID]
	fields := make(map[string]string, len(rec.Fields))
	for k, v := range rec.Fields {
		fields[k] = v
	}
	records[rec.ID] = storedRecord{
		fields: fields,
		tags:   append([]string(nil), rec.Tags...),
		vector: append([]float32(nil), rec.Vector...),
	}
	return !exists, nil
}

// Count reports how many records a class holds.
func (s *Store) Count(class string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.classes[class])
}

// SearchFAQs implements chat.Retriever.
func (s *Store) SearchFAQs(_ context.Context, vector []float32, limit int) ([]chat.RetrievedItem, error) {
	items := make([]chat.RetrievedItem, 0, limit)
	for _, rec := range s.nearest(seeding.ClassFAQ, vector, limit) {
		items = append(items, vectorstore.FAQItem(rec.fields["question"], rec.fields["answer"]))
	}
	return items, nil
}

// SearchEstimates implements chat.Retriever.
func (s *Store) SearchEstimates(_ context.Context, vector []float32, limit int) ([]chat.RetrievedItem, error) {
	items := make([]chat.RetrievedItem, 0, limit)
	for _, rec := range s.nearest(seeding.ClassEstimate, vector, limit) {
		items = append(items, vectorstore.EstimateItem(
			rec.fields["category"], rec.fields["item"], rec.fields["description"], rec.fields["priceRange"]))
	}
	return items, nil
}

// FeaturesByTag implements chat.Retriever.
func (s *Store) FeaturesByTag(_ context.Context, tag, tenant string) ([]chat.RetrievedItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var items []chat.RetrievedItem
	for _, rec := range s.classes[seeding.ClassFeature] {
		if rec.fields["clientId"] != tenant {
			continue
		}
		for _, candidate := range rec.tags {
			if candidate == tag {
				items = append(items, vectorstore.FeatureItem(rec.fields["name"], rec.fields["description"]))
				break
			}
		}
	}
	return items, nil
}

func (s *Store) nearest(class string, vector []float32, limit int) []storedRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	type scored struct {
		rec      storedRecord
		distance float64
	}
	var candidates []scored
	for _, rec := range s.classes[class] {
		candidates = append(candidates, scored{rec: rec, distance: l2Distance(vector, rec.vector)})
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].distance < candidates[j].distance })
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	out := make([]storedRecord, len(candidates))
	for i, c := range candidates {
		out[i] = c.rec
	}
	return out
}

func l2Distance(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}

var (
	_ chat.Retriever   = (*Store)(nil)
	_ seeding.Upserter = (*Store)(nil)
)

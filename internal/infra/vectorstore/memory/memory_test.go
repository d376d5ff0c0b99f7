package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fourp/smartchat/internal/domain/seeding"
)

func seedFAQ(t *testing.T, store *Store, id, question, answer string, vector []float32) {
	t.Helper()
	_, err := store.Upsert(context.Background(), seeding.ClassFAQ, seeding.SeedRecord{
		ID:     id,
		Fields: map[string]string{"question": question, "answer": answer},
		Vector: vector,
	})
	require.NoError(t, err)
}

func TestUpsertReportsCreatedThenUpdated(t *testing.T) {
	store := NewStore()
	rec := seeding.SeedRecord{ID: "id-1", Fields: map[string]string{"question": "q", "answer": "a"}}

	created, err := store.Upsert(context.Background(), seeding.ClassFAQ, rec)
	require.NoError(t, err)
	require.True(t, created)

	created, err = store.Upsert(context.Background(), seeding.ClassFAQ, rec)
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, 1, store.Count(seeding.ClassFAQ))
}

func TestSearchFAQsOrdersByDistance(t *testing.T) {
	store := NewStore()
	seedFAQ(t, store, "near", "near question", "near answer", []float32{1, 0})
	seedFAQ(t, store, "far", "far question", "far answer", []float32{0, 1})

	items, err := store.SearchFAQs(context.Background(), []float32{0.9, 0.1}, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "near answer", items[0].Text)
}

func TestFeaturesByTagFiltersTenantAndTag(t *testing.T) {
	store := NewStore()
	records := []seeding.SeedRecord{
		{ID: "1", Fields: map[string]string{"name": "fast", "clientId": "peachstate"}, Tags: []string{"speed"}},
		{ID: "2", Fields: map[string]string{"name": "cheap", "clientId": "peachstate"}, Tags: []string{"affordability"}},
		{ID: "3", Fields: map[string]string{"name": "other tenant", "clientId": "acme"}, Tags: []string{"speed"}},
	}
	for _, rec := range records {
		_, err := store.Upsert(context.Background(), seeding.ClassFeature, rec)
		require.NoError(t, err)
	}

	items, err := store.FeaturesByTag(context.Background(), "speed", "peachstate")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "fast", items[0].Text)
}

func TestSearchEmptyStore(t *testing.T) {
	store := NewStore()
	items, err := store.SearchEstimates(context.Background(), []float32{0.5}, 3)
	require.NoError(t, err)
	require.Empty(t, items)
}

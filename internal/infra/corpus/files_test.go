package corpus

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileSourceLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FAQFile, `[{"externalId":"faq-1","question":"q","answer":"a","tenant":"peachstate"}]`)
	writeFile(t, dir, FeatureFile, `[{"externalId":"feat-1","name":"n","tags":["speed"]}]`)
	writeFile(t, dir, EstimateFile, `[{"externalId":"est-1","category":"c","item":"i","priceRange":"$1 - $2"}]`)

	corpus, err := NewFileSource(dir).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, corpus.FAQs, 1)
	require.Equal(t, "faq-1", corpus.FAQs[0].ExternalID)
	require.Len(t, corpus.Features, 1)
	require.Equal(t, []string{"speed"}, corpus.Features[0].Tags)
	require.Len(t, corpus.Estimates, 1)
	require.Equal(t, "$1 - $2", corpus.Estimates[0].PriceRange)
}

func TestFileSourceMissingFilesAreEmpty(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FAQFile, `[]`)

	corpus, err := NewFileSource(dir).Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, corpus.FAQs)
	require.Empty(t, corpus.Features)
	require.Empty(t, corpus.Estimates)
}

func TestFileSourceMalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FAQFile, `{"not":"an array"`)

	_, err := NewFileSource(dir).Load(context.Background())
	require.Error(t, err)
}

func writeFile(t *testing.T, dir, name, payload string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(payload), 0o600))
}

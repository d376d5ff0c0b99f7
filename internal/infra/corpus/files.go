package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fourp/smartchat/internal/domain/seeding"
)

// Standard corpus file names inside a seed directory.
const (
	FAQFile      = "faqs.json"
	FeatureFile  = "features.json"
	EstimateFile = "estimates.json"
)

// FileSource loads the seed corpora from a local directory. A missing file
// simply yields an empty slice for that corpus.
type FileSource struct {
	dir string
}

// NewFileSource constructs the loader.
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

// Load implements seeding.Source.
func (s *FileSource) Load(_ context.Context) (seeding.Corpus, error) {
	var corpus seeding.Corpus
	if err := readJSONFile(filepath.Join(s.dir, FAQFile), &corpus.FAQs); err != nil {
		return seeding.Corpus{}, err
	}
	if err := readJSONFile(filepath.Join(s.dir, FeatureFile), &corpus.Features); err != nil {
		return seeding.Corpus{}, err
	}
	if err := readJSONFile(filepath.Join(s.dir, EstimateFile), &corpus.Estimates); err != nil {
		return seeding.Corpus{}, err
	}
	return corpus, nil
}

func readJSONFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read corpus file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse corpus file %s: %w", path, err)
	}
	return nil
}

var _ seeding.Source = (*FileSource)(nil)

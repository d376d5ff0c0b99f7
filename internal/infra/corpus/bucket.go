package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/fourp/smartchat/internal/domain/seeding"
)

// BucketSource loads the seed corpora from an S3-compatible bucket.
type BucketSource struct {
	client *minio.Client
	bucket string
	prefix string
	logger *slog.Logger
}

// NewBucketSource constructs the loader.
func NewBucketSource(endpoint, accessKey, secretKey, bucket, prefix string, logger *slog.Logger) (*BucketSource, error) {
	if logger == nil {
		logger = slog.Default()
	}
	useSSL := strings.HasPrefix(strings.ToLower(endpoint), "https")
	client, err := minio.New(sanitizeEndpoint(endpoint), &minio.Options{
		Creds:        credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure:       useSSL,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init corpus bucket client: %w", err)
	}
	return &BucketSource{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		logger: logger.With("component", "corpus.bucket"),
	}, nil
}

// Load implements seeding.Source. A missing object yields an empty slice
// for that corpus, matching the local file loader.
func (s *BucketSource) Load(ctx context.Context) (seeding.Corpus, error) {
	var corpus seeding.Corpus
	if err := s.readObject(ctx, FAQFile, &corpus.FAQs); err != nil {
		return seeding.Corpus{}, err
	}
	if err := s.readObject(ctx, FeatureFile, &corpus.Features); err != nil {
		return seeding.Corpus{}, err
	}
	if err := s.readObject(ctx, EstimateFile, &corpus.Estimates); err != nil {
		return seeding.Corpus{}, err
	}
	return corpus, nil
}

func (s *BucketSource) readObject(ctx context.Context, name string, out any) error {
	key := name
	if s.prefix != "" {
		key = path.Join(s.prefix, name)
	}
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return fmt.Errorf("fetch corpus object %s: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			s.logger.Info("corpus object absent, skipping", "key", key)
			return nil
		}
		return fmt.Errorf("read corpus object %s: %w", key, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse corpus object %s: %w", key, err)
	}
	return nil
}

func sanitizeEndpoint(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	if idx := strings.Index(raw, "/"); idx >= 0 {
		raw = raw[:idx]
	}
	return raw
}

var _ seeding.Source = (*BucketSource)(nil)

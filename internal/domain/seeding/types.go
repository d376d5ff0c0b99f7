package seeding

import "time"

// Weaviate-style class names for the three corpora.
const (
	ClassFAQ      = "FAQ"
	ClassFeature  = "Feature"
	ClassEstimate = "Estimate"
)

// FAQRecord is one question/answer pair from the FAQ corpus file.
type FAQRecord struct {
	ExternalID string `json:"externalId"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Tenant     string `json:"tenant"`
}

// FeatureRecord is one company selling point, tagged for intent lookup.
type FeatureRecord struct {
	ExternalID  string   `json:"externalId"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Tenant      string   `json:"tenant"`
}

// EstimateRecord is one price-range entry from the estimate corpus file.
type EstimateRecord struct {
	ExternalID  string `json:"externalId"`
	Category    string `json:"category"`
	Item        string `json:"item"`
	Description string `json:"description"`
	PriceRange  string `json:"priceRange"`
	Tenant      string `json:"tenant"`
}

// Corpus bundles the three source files for one seeding pass.
type Corpus struct {
	FAQs      []FAQRecord
	Features  []FeatureRecord
	Estimates []EstimateRecord
}

// SeedRecord is the provider-agnostic upsert payload. Identity is derived
// from the natural key, never generated randomly, so re-seeding the same
// source never creates duplicates.
type SeedRecord struct {
	ID     string
	Fields map[string]string
	Tags   []string
	Vector []float32
}

// RecordError reports one skipped record.
type RecordError struct {
	Class string
	Key   string
	Err   error
}

// Report summarizes a seeding pass. Malformed records are skipped and
// reported; they never abort the batch.
type Report struct {
	Created    int
	Updated    int
	Skipped    int
	Errors     []RecordError
	StartedAt  time.Time
	FinishedAt time.Time
}

// Upserted is the total number of records written.
func (r Report) Upserted() int {
	return r.Created + r.Updated
}

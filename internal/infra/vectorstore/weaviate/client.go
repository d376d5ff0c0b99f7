package weaviate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fourp/smartchat/internal/domain/chat"
	"github.com/fourp/smartchat/internal/domain/seeding"
	"github.com/fourp/smartchat/internal/infra/vectorstore"
)

// Client is a minimal REST/GraphQL client to a Weaviate instance. It covers
// exactly what the chat and seeding domains need: nearVector queries, a
// tag-filtered lookup, and idempotent object upserts.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds a Weaviate client.
func NewClient(baseURL, apiKey string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("weaviate base url cannot be empty")
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// SearchFAQs returns the answers nearest to the query vector.
func (c *Client) SearchFAQs(ctx context.Context, vector []float32, limit int) ([]chat.RetrievedItem, error) {
	query := fmt.Sprintf("{ Get { FAQ(nearVector: {vector: [%s]}, limit: %d) { question answer } } }",
		joinVector(vector), limit)
	var objects []struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	}
	if err := c.graphql(ctx, query, "FAQ", &objects); err != nil {
		return nil, err
	}
	items := make([]chat.RetrievedItem, 0, len(objects))
	for _, obj := range objects {
		if strings.TrimSpace(obj.Answer) == "" {
			continue
		}
		items = append(items, vectorstore.FAQItem(obj.Question, obj.Answer))
	}
	return items, nil
}

// SearchEstimates returns the estimate entries nearest to the query vector.
func (c *Client) SearchEstimates(ctx context.Context, vector []float32, limit int) ([]chat.RetrievedItem, error) {
	query := fmt.Sprintf("{ Get { Estimate(nearVector: {vector: [%s]}, limit: %d) { category item description priceRange } } }",
		joinVector(vector), limit)
	var objects []struct {
		Category    string `json:"category"`
		Item        string `json:"item"`
		Description string `json:"description"`
		PriceRange  string `json:"priceRange"`
	}
	if err := c.graphql(ctx, query, "Estimate", &objects); err != nil {
		return nil, err
	}
	items := make([]chat.RetrievedItem, 0, len(objects))
	for _, obj := range objects {
		if strings.TrimSpace(obj.PriceRange) == "" {
			continue
		}
		items = append(items, vectorstore.EstimateItem(obj.Category, obj.Item, obj.Description, obj.PriceRange))
	}
	return items, nil
}

// FeaturesByTag returns the tenant's features carrying the given intent tag.
func (c *Client) FeaturesByTag(ctx context.Context, tag, tenant string) ([]chat.RetrievedItem, error) {
	query := fmt.Sprintf(
		"{ Get { Feature(where: {operator: And, operands: ["+
			"{path: [\"tags\"], operator: ContainsAny, valueTextArray: [%q]}, "+
			"{path: [\"clientId\"], operator: Equal, valueText: %q}"+
			"]}) { name description } } }", tag, tenant)
	var objects []struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.graphql(ctx, query, "Feature", &objects); err != nil {
		return nil, err
	}
	items := make([]chat.RetrievedItem, 0, len(objects))
	for _, obj := range objects {
		if strings.TrimSpace(obj.Name) == "" {
			continue
		}
		items = append(items, vectorstore.FeatureItem(obj.Name, obj.Description))
	}
	return items, nil
}

// Upsert writes one object: existence check by ID, then PUT when present,
// POST when absent. IDs are deterministic so repeated seeding is idempotent.
func (c *Client) Upsert(ctx context.Context, class string, rec seeding.SeedRecord) (bool, error) {
	exists, err := c.objectExists(ctx, class, rec.ID)
	if err != nil {
		return false, err
	}

	properties := make(map[string]any, len(rec.Fields)+1)
	for key, value := range rec.Fields {
		properties[key] = value
	}
	if len(rec.Tags) > 0 {
		properties["tags"] = rec.Tags
	}
	payload := map[string]any{
		"id":         rec.ID,
		"class":      class,
		"properties": properties,
		"vector":     rec.Vector,
	}

	method := http.MethodPost
	endpoint := c.baseURL + "/v1/objects"
	if exists {
		method = http.MethodPut
		endpoint = fmt.Sprintf("%s/v1/objects/%s/%s", c.baseURL, class, rec.ID)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return false, fmt.Errorf("encode object: %w", err)
	}
	resp, err := c.do(ctx, method, endpoint, bytes.NewReader(body))
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return false, fmt.Errorf("weaviate upsert failed: status=%d body=%s", resp.StatusCode, string(detail))
	}
	return !exists, nil
}

func (c *Client) objectExists(ctx context.Context, class, id string) (bool, error) {
	endpoint := fmt.Sprintf("%s/v1/objects/%s/%s", c.baseURL, class, id)
	resp, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	switch {
	case resp.StatusCode == http.StatusOK:
		return true, nil
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("weaviate object lookup failed: status=%d", resp.StatusCode)
	}
}

type graphqlResponse struct {
	Data struct {
		Get map[string]json.RawMessage `json:"Get"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// graphql runs a Get query and decodes the class payload into out. A query
// the server rejects at the GraphQL level yields an empty result set, not an
// error; the router renders its no-match sentinel instead.
func (c *Client) graphql(ctx context.Context, query, class string, out any) error {
	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return fmt.Errorf("encode graphql query: %w", err)
	}
	resp, err := c.do(ctx, http.MethodPost, c.baseURL+"/v1/graphql", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("weaviate query failed: status=%d body=%s", resp.StatusCode, string(detail))
	}

	var decoded graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return fmt.Errorf("decode graphql response: %w", err)
	}
	if len(decoded.Errors) > 0 {
		return nil
	}
	raw, ok := decoded.Data.Get[class]
	if !ok || len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s objects: %w", class, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build weaviate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weaviate request failed: %w", err)
	}
	return resp, nil
}

func joinVector(vector []float32) string {
	parts := make([]string, len(vector))
	for i, v := range vector {
		parts[i] = strconv.FormatFloat(float64(v), 'g', -1, 32)
	}
	return strings.Join(parts, ",")
}

var (
	_ chat.Retriever   = (*Client)(nil)
	_ seeding.Upserter = (*Client)(nil)
)

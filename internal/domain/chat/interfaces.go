package chat

import (
	"context"
	"time"

	"github.com/fourp/smartchat/internal/infra/llm/chatgpt"
)

// ChatClient is the slice of the LLM provider the chat domain needs.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
	CreateEmbedding(ctx context.Context, req chatgpt.EmbeddingRequest) (chatgpt.EmbeddingResponse, error)
}

// Retriever performs nearest-neighbour and filtered lookups against the
// stored corpora. Empty result sets return empty slices, not errors.
type Retriever interface {
	SearchFAQs(ctx context.Context, vector []float32, limit int) ([]RetrievedItem, error)
	SearchEstimates(ctx context.Context, vector []float32, limit int) ([]RetrievedItem, error)
	FeaturesByTag(ctx context.Context, tag, tenant string) ([]RetrievedItem, error)
}

// CachedAnswer is a previously generated default-path answer.
type CachedAnswer struct {
	Answer    string    `json:"answer"`
	IntentTag IntentTag `json:"intentTag,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// AnswerCache stores default-path answers keyed by normalized question.
// Canned branches and estimate flows are never cached.
type AnswerCache interface {
	Get(ctx context.Context, key string) (CachedAnswer, bool, error)
	Set(ctx context.Context, key string, answer CachedAnswer, ttl time.Duration) error
}

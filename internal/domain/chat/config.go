package chat

import "time"

// Config holds runtime knobs for the chat service.
type Config struct {
	Model           string
	EmbeddingModel  string
	Temperature     float32
	Tenant          string
	Persona         string
	MaxResponseLen  int
	FAQLimit        int
	EstimateLimit   int
	MaxPromptTokens int
	CacheTTL        time.Duration
}

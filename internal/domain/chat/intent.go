package chat

import (
	"context"
	"strings"

	"github.com/fourp/smartchat/internal/infra/llm/chatgpt"
	"github.com/fourp/smartchat/pkg/metrics"
)

// classifyIntent asks the LLM to pick one tag from the allowed set. The
// completion endpoint is constrained by system-instruction framing; any
// reply outside the closed set is treated as no tag.
func (s *service) classifyIntent(ctx context.Context, question string, usage *metrics.TokenUsage) (IntentTag, error) {
	labels := make([]string, len(AllowedIntentTags))
	for i, tag := range AllowedIntentTags {
		labels[i] = string(tag)
	}

	system := "You classify customer questions for an electrical contractor. " +
		"Reply with exactly one word: one of [" + strings.Join(labels, ", ") + "] " +
		"that best describes the customer's underlying concern, or none if nothing fits."

	resp, err := s.client.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		Model: s.cfg.Model,
		Messages: []chatgpt.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: question},
		},
		Temperature: 0,
		MaxTokens:   8,
	})
	if err != nil {
		return "", err
	}
	usage.Add(metrics.TokenUsage{
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	})
	if len(resp.Choices) == 0 {
		return "", nil
	}

	reply := strings.ToLower(strings.Trim(strings.TrimSpace(resp.Choices[0].Message.Content), ".\"'"))
	for _, tag := range AllowedIntentTags {
		if reply == string(tag) {
			return tag, nil
		}
	}
	return "", nil
}

package chat

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

const promptEncoding = "cl100k_base"

// promptComposer builds the retrieval-augmented instruction block and keeps
// it inside a token budget.
type promptComposer struct {
	persona   string
	maxTokens int
	encoder   *tiktoken.Tiktoken
}

func newPromptComposer(persona string, maxTokens int) *promptComposer {
	encoder, err := tiktoken.GetEncoding(promptEncoding)
	if err != nil {
		// Budgeting degrades to unbounded prompts; composition still works.
		encoder = nil
	}
	return &promptComposer{persona: persona, maxTokens: maxTokens, encoder: encoder}
}

// compose renders the full prompt. Snippet order is preserved. When the
// result exceeds the token budget, trailing FAQ snippets are dropped first,
// then trailing feature snippets; the question and instructions always stay.
func (p *promptComposer) compose(question string, faqSnippets, featureSnippets []string, tag IntentTag) string {
	prompt := p.render(question, faqSnippets, featureSnippets, tag)
	if p.encoder == nil || p.maxTokens <= 0 {
		return prompt
	}
	for p.countTokens(prompt) > p.maxTokens && len(faqSnippets) > 0 {
		faqSnippets = faqSnippets[:len(faqSnippets)-1]
		prompt = p.render(question, faqSnippets, featureSnippets, tag)
	}
	for p.countTokens(prompt) > p.maxTokens && len(featureSnippets) > 0 {
		featureSnippets = featureSnippets[:len(featureSnippets)-1]
		prompt = p.render(question, faqSnippets, featureSnippets, tag)
	}
	return prompt
}

func (p *promptComposer) render(question string, faqSnippets, featureSnippets []string, tag IntentTag) string {
	var b strings.Builder
	b.WriteString(p.persona)
	b.WriteString("\n\n")

	if tag != "" {
		fmt.Fprintf(&b, "The customer seems interested in: %s\n\n", tag)
	}

	fmt.Fprintf(&b, "Customer question: %q\n\n", question)

	if len(faqSnippets) > 0 {
		b.WriteString("Relevant FAQ information:\n")
		for _, snippet := range faqSnippets {
			b.WriteString("• ")
			b.WriteString(snippet)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(featureSnippets) > 0 {
		b.WriteString("Relevant company features to highlight:\n")
		for _, snippet := range featureSnippets {
			b.WriteString("• ")
			b.WriteString(snippet)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("Instructions:\n")
	b.WriteString("1. Provide a helpful, conversational response\n")
	b.WriteString("2. Use the FAQ information as your primary source\n")
	b.WriteString("3. Naturally incorporate relevant company features\n")
	b.WriteString("4. If scheduling is mentioned, guide them to provide more details\n")
	b.WriteString("5. For emergencies, emphasize calling (404) 555-1212 immediately\n")
	b.WriteString("6. Be warm, professional, and locally focused on Atlanta\n")
	b.WriteString("7. End with a follow-up question or offer to help further\n")

	return b.String()
}

func (p *promptComposer) countTokens(text string) int {
	if p.encoder == nil {
		return 0
	}
	return len(p.encoder.Encode(text, nil, nil))
}

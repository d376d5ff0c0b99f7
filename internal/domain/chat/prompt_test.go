package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func testComposer() *promptComposer {
	return &promptComposer{persona: "You are a test persona.", maxTokens: 0}
}

func TestRenderSectionsAndOrder(t *testing.T) {
	p := testComposer()
	prompt := p.render("Are you licensed?",
		[]string{"Q: licensed? A: yes."},
		[]string{"Licensed, bonded, and insured"},
		"trust")

	require.True(t, strings.HasPrefix(prompt, "You are a test persona."))
	require.Contains(t, prompt, "The customer seems interested in: trust")
	require.Contains(t, prompt, `Customer question: "Are you licensed?"`)
	require.Contains(t, prompt, "Relevant FAQ information:\n• Q: licensed? A: yes.")
	require.Contains(t, prompt, "Relevant company features to highlight:\n• Licensed, bonded, and insured")
	require.Contains(t, prompt, "(404) 555-1212")

	faqIdx := strings.Index(prompt, "Relevant FAQ information:")
	featIdx := strings.Index(prompt, "Relevant company features")
	instrIdx := strings.Index(prompt, "Instructions:")
	require.True(t, faqIdx < featIdx && featIdx < instrIdx)
}

func TestRenderOmitsEmptySections(t *testing.T) {
	p := testComposer()
	prompt := p.render("hello", nil, nil, "")

	require.NotContains(t, prompt, "The customer seems interested in")
	require.NotContains(t, prompt, "Relevant FAQ information")
	require.NotContains(t, prompt, "Relevant company features")
	require.Contains(t, prompt, "Instructions:")
}

func TestComposeWithoutEncoderKeepsEverything(t *testing.T) {
	p := testComposer()
	faqs := []string{"one", "two", "three"}
	prompt := p.compose("question", faqs, nil, "")
	for _, snippet := range faqs {
		require.Contains(t, prompt, "• "+snippet)
	}
}

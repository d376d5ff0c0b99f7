package chat

import (
	"strings"
	"unicode/utf8"
)

// shorten trims text to the display budget, preferring a sentence boundary.
// If the last sentence-ending mark within the budget sits past 60% of the
// limit the text is cut there, otherwise it is hard truncated with an
// ellipsis marker. Cuts never split a multi-byte rune.
func shorten(text string, limit int) string {
	if limit <= 0 || len(text) <= limit {
		return text
	}

	cut := limit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	truncated := text[:cut]
	boundary := strings.LastIndexAny(truncated, ".?!")

	if boundary > limit*6/10 {
		return truncated[:boundary+1]
	}
	return truncated + "..."
}

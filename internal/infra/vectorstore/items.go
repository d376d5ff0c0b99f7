// Package vectorstore holds the pieces shared by the retrieval provider
// implementations: how raw corpus rows become chat.RetrievedItem values.
package vectorstore

import (
	"strings"

	"github.com/fourp/smartchat/internal/domain/chat"
)

// FAQItem renders a FAQ row. The answer is the retrieval payload; the
// question rides along as metadata.
func FAQItem(question, answer string) chat.RetrievedItem {
	return chat.RetrievedItem{
		Text: answer,
		Kind: chat.KindFAQ,
		Metadata: map[string]string{
			"question": question,
		},
	}
}

// FeatureItem renders a company feature row.
func FeatureItem(name, description string) chat.RetrievedItem {
	text := name
	if strings.TrimSpace(description) != "" {
		text = name + ": " + description
	}
	return chat.RetrievedItem{
		Text: text,
		Kind: chat.KindFeature,
		Metadata: map[string]string{
			"name": name,
		},
	}
}

// EstimateItem renders an estimate row into the display form the router
// embeds directly in its reply.
func EstimateItem(category, item, description, priceRange string) chat.RetrievedItem {
	var b strings.Builder
	b.WriteString("**")
	b.WriteString(item)
	b.WriteString("**")
	if strings.TrimSpace(category) != "" {
		b.WriteString(" (")
		b.WriteString(category)
		b.WriteString(")")
	}
	b.WriteString(": ")
	b.WriteString(priceRange)
	if strings.TrimSpace(description) != "" {
		b.WriteString("\n")
		b.WriteString(description)
	}
	return chat.RetrievedItem{
		Text: b.String(),
		Kind: chat.KindEstimate,
		Metadata: map[string]string{
			"category":   category,
			"item":       item,
			"priceRange": priceRange,
		},
	}
}

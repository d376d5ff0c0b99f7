package chat

import "strings"

// genericWorkKeywords flag short estimate descriptions that are too vague to
// price. A question qualifies only when it is at most maxGenericWords long
// and contains one of these words.
var genericWorkKeywords = map[string]struct{}{
	"fix": {}, "repair": {}, "install": {}, "replace": {}, "upgrade": {},
	"outlet": {}, "outlets": {}, "light": {}, "lights": {}, "lighting": {},
	"wiring": {}, "panel": {}, "electrical": {}, "power": {},
	"issue": {}, "problem": {}, "help": {}, "work": {},
}

const maxGenericWords = 6

// scheduleSentiment classifies a reply to the schedule-call prompt.
type scheduleSentiment int

const (
	sentimentNeutral scheduleSentiment = iota
	sentimentPositive
	sentimentNegative
)

// Single words must match whole words only ("ok" must not fire on "broken"),
// phrases are matched by containment. The positive set is checked first.
var positiveScheduleWords = map[string]struct{}{
	"yes": {}, "yeah": {}, "yep": {}, "sure": {}, "ok": {}, "okay": {},
	"please": {}, "absolutely": {}, "definitely": {},
}

var positiveSchedulePhrases = []string{"sounds good"}

var negativeScheduleWords = map[string]struct{}{
	"no": {}, "nope": {}, "later": {}, "maybe": {}, "don't": {}, "dont": {},
}

var negativeSchedulePhrases = []string{"not now"}

func isGenericWorkDescription(question string) bool {
	words := strings.Fields(strings.ToLower(question))
	if len(words) == 0 || len(words) > maxGenericWords {
		return false
	}
	for _, word := range words {
		trimmed := strings.Trim(word, ".,!?;:\"'")
		if _, ok := genericWorkKeywords[trimmed]; ok {
			return true
		}
	}
	return false
}

func classifyScheduleReply(question string) scheduleSentiment {
	lowered := strings.ToLower(question)
	words := make([]string, 0, 8)
	for _, word := range strings.Fields(lowered) {
		words = append(words, strings.Trim(word, ".,!?;:\"'"))
	}

	if matchesSentiment(lowered, words, positiveScheduleWords, positiveSchedulePhrases) {
		return sentimentPositive
	}
	if matchesSentiment(lowered, words, negativeScheduleWords, negativeSchedulePhrases) {
		return sentimentNegative
	}
	return sentimentNeutral
}

func matchesSentiment(lowered string, words []string, wordSet map[string]struct{}, phrases []string) bool {
	for _, word := range words {
		if _, ok := wordSet[word]; ok {
			return true
		}
	}
	for _, phrase := range phrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}

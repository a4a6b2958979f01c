package agent

import "strings"

// historyTriggers route a query to the conversation-history answerer.
// Substring matching is deliberate: "how many questions" and "what did
// we discuss" both land here regardless of phrasing around the trigger.
var historyTriggers = []string{
	"first", "last", "previous", "before",
	"how many", "what did", "what was", "all questions",
}

// Follow-up heuristics. Pronouns and single-word references match on
// word boundaries, not raw substrings - "it" as a substring would flag
// nearly every English sentence.
var (
	followUpPronouns = []string{
		"it", "that", "this", "those", "these", "they", "them", "their",
	}
	followUpReferences = []string{
		"above", "mentioned", "said", "explained", "discussed",
		"talked about", "earlier", "before",
	}
	followUpStarters = []string{
		"what about", "how about", "and", "but", "so", "then",
	}
)

const shortQuestionWords = 5

func isHistoryQuestion(query string) bool {
	q := strings.ToLower(query)
	for _, trigger := range historyTriggers {
		if strings.Contains(q, trigger) {
			return true
		}
	}
	return false
}

// isFollowUp reports whether the query likely refers to earlier
// conversation: referential words, a continuation opener, or a question
// too short to stand on its own.
func isFollowUp(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return false
	}

	words := strings.Fields(q)
	wordSet := make(map[string]bool, len(words))
	for _, w := range words {
		wordSet[strings.Trim(w, ".,!?;:'\"")] = true
	}

	for _, pronoun := range followUpPronouns {
		if wordSet[pronoun] {
			return true
		}
	}

	for _, ref := range followUpReferences {
		if strings.Contains(ref, " ") {
			if strings.Contains(q, ref) {
				return true
			}
		} else if wordSet[ref] {
			return true
		}
	}

	for _, starter := range followUpStarters {
		if q == starter || strings.HasPrefix(q, starter+" ") {
			return true
		}
	}

	return len(words) <= shortQuestionWords
}

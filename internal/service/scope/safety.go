package scope

import (
	"regexp"
	"strings"
)

// toxicPatterns flag content inappropriate for a school-age audience.
// Matching is fail-safe: anything not caught here is treated as safe so
// a filter bug cannot silence legitimate questions.
var toxicPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(kill\s+yourself|suicide|self\s*harm)\b`),
	regexp.MustCompile(`\b(fuck|shit|bitch|asshole|dick|pussy)\b`),
	regexp.MustCompile(`\b(nazi|hitler|white\s+supremacy)\b`),
	regexp.MustCompile(`\b(drugs?|cocaine|heroin|meth)\b`),
	regexp.MustCompile(`\b(porn|pornography|sex\s+video)\b`),
	regexp.MustCompile(`\b(hate\s+speech|racist|sexist)\b`),
}

// SafetyRefusal is what transports answer when CheckSafety rejects the
// input.
const SafetyRefusal = "I can't help with that. Let's keep our conversation focused on NCERT Science Class 8 topics."

// SafetyResult is the verdict of the transport-level content filter.
type SafetyResult struct {
	Safe       bool
	Reason     string
	Confidence float64
}

// CheckSafety screens raw user input before it reaches the query
// pipeline. Transports call it and answer refusals themselves; it is
// not part of query routing.
func CheckSafety(content string) SafetyResult {
	lower := strings.ToLower(content)

	for _, pattern := range toxicPatterns {
		if pattern.MatchString(lower) {
			return SafetyResult{
				Safe:       false,
				Reason:     "Content contains inappropriate language or topics",
				Confidence: 0.9,
			}
		}
	}

	return SafetyResult{
		Safe:       true,
		Reason:     "Content is appropriate",
		Confidence: 0.8,
	}
}

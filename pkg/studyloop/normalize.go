package studyloop

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	// Keeps letters, digits, whitespace and arithmetic operators so that
	// numeric expressions like "2 + 2" survive for the calculation rule.
	punctRe = regexp.MustCompile(`[^\p{L}\p{N}\s+\-*/]`)
)

// Normalize lowercases and collapses whitespace. It is shared by the
// classifier, the follow-up generator and the scorer so that keyword
// matching semantics stay consistent across all of them.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return whitespaceRe.ReplaceAllString(s, " ")
}

// normalizeForMatch additionally strips punctuation. Used for trigger and
// keyword matching; the raw text is kept separately for display.
func normalizeForMatch(s string) string {
	return Normalize(punctRe.ReplaceAllString(Normalize(s), ""))
}

func containsAny(text string, triggers []string) bool {
	for _, t := range triggers {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}

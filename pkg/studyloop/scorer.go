package studyloop

import (
	"regexp"
	"strings"
)

// Verdict thresholds. Kept forgiving on purpose; the keyword groups are
// coarse and most students answer in their second language.
const (
	correctThreshold = 0.70
	partlyThreshold  = 0.40
)

var interrogativeStartRe = regexp.MustCompile(`^(why|what|how|when|where|is)\b`)

// LooksLikeNewQuestion reports whether a reply reads as a fresh question
// rather than an answer: it ends with "?" or opens with an interrogative.
// Empty text is NOT a question; it grades as an incorrect answer.
func LooksLikeNewQuestion(text string) bool {
	t := strings.TrimSpace(strings.ToLower(text))
	if t == "" {
		return false
	}
	if strings.HasSuffix(t, "?") {
		return true
	}
	return interrogativeStartRe.MatchString(t)
}

// ScoreAnswer grades a free-text answer against the expected keyword groups.
// If the answer looks like a new question it refuses to grade and returns
// the VerdictNotGraded sentinel instead of a numeric verdict. Malformed
// input never errors: an empty answer simply scores zero coverage.
func ScoreAnswer(answer string, groups []KeywordGroup) ScoreResult {
	if LooksLikeNewQuestion(answer) {
		return ScoreResult{Verdict: VerdictNotGraded, LooksLikeNewQuestion: true}
	}
	return scoreCoverage(answer, groups)
}

// scoreCoverage is the unconditional grading path, used directly when the
// student has explicitly declared the reply to be an answer.
func scoreCoverage(answer string, groups []KeywordGroup) ScoreResult {
	norm := Normalize(answer)

	var satisfied, missing []KeywordGroup
	for _, g := range groups {
		if groupSatisfied(norm, g) {
			satisfied = append(satisfied, g)
		} else {
			missing = append(missing, g)
		}
	}

	total := len(groups)
	if total < 1 {
		total = 1
	}
	coverage := float64(len(satisfied)) / float64(total)

	verdict := VerdictIncorrect
	switch {
	case coverage >= correctThreshold:
		verdict = VerdictCorrect
	case coverage >= partlyThreshold:
		verdict = VerdictPartlyCorrect
	}

	return ScoreResult{
		Coverage:  coverage,
		Verdict:   verdict,
		Satisfied: satisfied,
		Missing:   missing,
	}
}

// groupSatisfied: any member, normalized, appearing as a substring of the
// normalized answer satisfies the whole group.
func groupSatisfied(normalizedAnswer string, group KeywordGroup) bool {
	for _, member := range group {
		m := Normalize(member)
		if m != "" && strings.Contains(normalizedAnswer, m) {
			return true
		}
	}
	return false
}

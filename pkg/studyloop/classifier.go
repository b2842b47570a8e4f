package studyloop

import (
	"regexp"
	"strings"
)

// Trigger lists are evaluated top to bottom; the first matching rule wins.
// The ordering is load-bearing: it is what makes classification
// deterministic, so do not reorder without updating the tests.
var (
	essayTriggers = []string{
		"discuss", "evaluate", "assess", "analyse", "analyze",
		"to what extent", "write an essay",
	}
	definitionTriggers = []string{"what is", "meaning of", "define the term"}
	calcTriggers       = []string{
		"calculate", "solve", "find the value", "simplify",
		"differentiate", "integrate",
	}
	compareTriggers = []string{"compare", "difference", "distinguish", "differentiate between"}
	explainTriggers = []string{"explain", "describe", "outline", "how", "why"}

	numericExprRe = regexp.MustCompile(`\d+\s*[-+*/]\s*\d+`)
)

// Classify maps free-form question text to a QType using ordered substring
// rules. Unmatched text falls through to QTypeGeneral.
func Classify(question string) QType {
	text := normalizeForMatch(question)

	switch {
	case containsAny(text, essayTriggers):
		return QTypeEssay
	case strings.HasPrefix(text, "define") || containsAny(text, definitionTriggers):
		return QTypeDefinition
	case containsAny(text, calcTriggers) || numericExprRe.MatchString(Normalize(question)):
		return QTypeCalculation
	case containsAny(text, compareTriggers):
		return QTypeCompare
	case containsAny(text, explainTriggers):
		return QTypeExplain
	default:
		return QTypeGeneral
	}
}

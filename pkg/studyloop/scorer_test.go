package studyloop

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreAnswerFullCoverage(t *testing.T) {
	groups := []KeywordGroup{
		{"water"},
		{"membrane", "semi-permeable"},
		{"concentration"},
	}
	answer := "Water moves across the semi-permeable membrane from a region of high concentration."

	res := ScoreAnswer(answer, groups)

	assert.Equal(t, VerdictCorrect, res.Verdict)
	assert.Equal(t, 1.0, res.Coverage)
	assert.Len(t, res.Satisfied, 3)
	assert.Empty(t, res.Missing)
}

func TestScoreAnswerEmptyIsIncorrectNotSentinel(t *testing.T) {
	groups := []KeywordGroup{{"water"}, {"membrane"}}

	res := ScoreAnswer("", groups)

	assert.Equal(t, VerdictIncorrect, res.Verdict)
	assert.Equal(t, 0.0, res.Coverage)
	assert.False(t, res.LooksLikeNewQuestion)
}

func TestScoreAnswerRefusesToGradeQuestions(t *testing.T) {
	groups := []KeywordGroup{{"water"}}

	cases := []string{
		"?",
		"What about diffusion then?",
		"why does that happen",
		"how do I answer this",
		"is it the membrane",
	}
	for _, answer := range cases {
		res := ScoreAnswer(answer, groups)
		assert.Equal(t, VerdictNotGraded, res.Verdict, answer)
		assert.True(t, res.LooksLikeNewQuestion, answer)
	}

	// A statement that merely contains reasoning words grades normally.
	res := ScoreAnswer("it happens because water moves out", groups)
	assert.NotEqual(t, VerdictNotGraded, res.Verdict)
}

func TestScoreAnswerThresholds(t *testing.T) {
	// Ten disjoint single-member groups make coverage easy to dial in.
	groups := make([]KeywordGroup, 10)
	words := []string{"alpha", "bravo", "delta", "echo", "foxtrot", "golf", "hotel", "india", "juliet", "kilo"}
	for i, w := range words {
		groups[i] = KeywordGroup{w}
	}

	cases := []struct {
		hits    int
		verdict Verdict
	}{
		{10, VerdictCorrect},
		{7, VerdictCorrect},       // 0.70 boundary
		{6, VerdictPartlyCorrect}, // 0.60
		{4, VerdictPartlyCorrect}, // 0.40 boundary
		{3, VerdictIncorrect},     // 0.30
		{0, VerdictIncorrect},
	}
	for _, tc := range cases {
		answer := "the answer covers " + strings.Join(words[:tc.hits], " and ")
		res := ScoreAnswer(answer, groups)
		require.InDelta(t, float64(tc.hits)/10.0, res.Coverage, 1e-9)
		assert.Equal(t, tc.verdict, res.Verdict, "hits=%d", tc.hits)
	}
}

func TestScoreAnswerMonotonic(t *testing.T) {
	groups := []KeywordGroup{{"water"}, {"membrane"}}
	answer := "water passes through the membrane"

	base := ScoreAnswer(answer, groups)

	// Adding another satisfied group cannot decrease coverage.
	extended := append(append([]KeywordGroup{}, groups...), KeywordGroup{"passes"})
	res := ScoreAnswer(answer, extended)
	assert.GreaterOrEqual(t, res.Coverage, base.Coverage)

	// Removing a satisfied keyword from the answer cannot increase coverage.
	res = ScoreAnswer("water passes through", groups)
	assert.LessOrEqual(t, res.Coverage, base.Coverage)
}

func TestScoreAnswerCaseAndWhitespaceInsensitive(t *testing.T) {
	groups := []KeywordGroup{{"Semi-Permeable"}}
	res := ScoreAnswer("the   SEMI-PERMEABLE   layer", groups)
	assert.Equal(t, 1.0, res.Coverage)
}

func TestScoreAnswerNoGroups(t *testing.T) {
	// Defensive: never divides by zero.
	res := ScoreAnswer("anything", nil)
	assert.Equal(t, 0.0, res.Coverage)
	assert.Equal(t, VerdictIncorrect, res.Verdict)
}

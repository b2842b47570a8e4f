package studyloop

// QType is the coarse rhetorical demand of a student question.
type QType string

const (
	QTypeEssay       QType = "essay"
	QTypeDefinition  QType = "definition"
	QTypeCalculation QType = "calculation"
	QTypeCompare     QType = "compare"
	QTypeExplain     QType = "explain"
	QTypeGeneral     QType = "general"
)

// TopicID is a subject-specific topic tag used to pick a sharper keyword bank.
type TopicID string

const TopicGeneral TopicID = "general"

// Level mirrors the NECTA exam tiers the app supports.
type Level string

const (
	LevelCSEE  Level = "CSEE (Form IV)"
	LevelACSEE Level = "ACSEE (Form VI)"
)

// KeywordGroup is a set of interchangeable acceptable terms. A group is
// satisfied when any member appears in the normalized answer text.
type KeywordGroup []string

// FollowUp is the generated follow-up question together with its answer key.
type FollowUp struct {
	Question string         `json:"question"`
	Expected []KeywordGroup `json:"expected"`
	QType    QType          `json:"question_type"`
	Topic    TopicID        `json:"topic"`
}

// Verdict is the three-way grading outcome, plus the not-graded sentinel for
// replies that look like a new question.
type Verdict string

const (
	VerdictCorrect       Verdict = "correct"
	VerdictPartlyCorrect Verdict = "partly_correct"
	VerdictIncorrect     Verdict = "incorrect"
	VerdictNotGraded     Verdict = "not_graded"
)

// ScoreResult is the scorer output for one student answer.
type ScoreResult struct {
	Coverage             float64        `json:"coverage"`
	Verdict              Verdict        `json:"verdict"`
	Satisfied            []KeywordGroup `json:"satisfied,omitempty"`
	Missing              []KeywordGroup `json:"missing,omitempty"`
	LooksLikeNewQuestion bool           `json:"looks_like_new_question,omitempty"`
}

package studyloop

import (
	"fmt"
	"strings"
)

// Phase of the per-session loop state machine.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseAwaiting Phase = "awaiting_follow_up_answer"
)

// InitialRetries is how many retries a student gets after the first wrong
// attempt (two attempts total).
const InitialRetries = 1

// MaxOutlineHints bounds the model-outline hint list shown when retries run out.
const MaxOutlineHints = 6

// Intent is the student's declared purpose for a message sent while a
// follow-up is pending. Declaring intent avoids misgrading a genuine new
// question as a wrong answer.
type Intent string

const (
	IntentUnspecified Intent = ""
	IntentNewQuestion Intent = "question"
	IntentAnswer      Intent = "answer"
)

// OutcomeKind tags what SubmitAnswer decided.
type OutcomeKind string

const (
	OutcomePassed      OutcomeKind = "passed"
	OutcomeRetry       OutcomeKind = "retry"
	OutcomeExhausted   OutcomeKind = "exhausted"
	OutcomeNotGraded   OutcomeKind = "not_graded"
	OutcomeNewQuestion OutcomeKind = "new_question"
)

// Outcome is the result of submitting one reply while a follow-up was
// pending, including the tutor-voiced feedback to show the student.
type Outcome struct {
	Kind         OutcomeKind
	Score        *ScoreResult
	Feedback     string
	OutlineHints []string
}

// State tracks one chat session's Study Loop. The zero value is not valid;
// use NewState.
type State struct {
	Phase            Phase     `json:"phase"`
	Pending          *FollowUp `json:"pending,omitempty"`
	RetriesRemaining int       `json:"retries_remaining"`
	OriginalQuestion string    `json:"original_question,omitempty"`
	Subject          string    `json:"subject,omitempty"`
	Level            Level     `json:"level,omitempty"`
}

func NewState() *State {
	return &State{Phase: PhaseIdle}
}

// Awaiting reports whether the next student message should be treated as a
// follow-up answer unless the student declares otherwise.
func (s *State) Awaiting() bool {
	return s.Phase == PhaseAwaiting && s.Pending != nil
}

// Arm transitions Idle -> AwaitingFollowUpAnswer. Call only after a tutor
// answer was actually produced with the Study Loop enabled; a failed tutor
// turn must never arm the loop.
func (s *State) Arm(level Level, subject, originalQuestion string, fu FollowUp) {
	s.Phase = PhaseAwaiting
	s.Pending = &fu
	s.RetriesRemaining = InitialRetries
	s.OriginalQuestion = originalQuestion
	s.Subject = subject
	s.Level = level
}

func (s *State) reset() {
	s.Phase = PhaseIdle
	s.Pending = nil
	s.RetriesRemaining = 0
	s.OriginalQuestion = ""
}

// SubmitAnswer advances the state machine with the student's reply. The
// caller must have checked Awaiting. Transitions:
//   - declared new question            -> Idle, nothing graded
//   - Correct                          -> Idle
//   - wrong, retries left              -> stays Awaiting, retries-1
//   - wrong, no retries left           -> Idle, model outline emitted
//   - looks like a question, intent
//     unspecified                      -> stays Awaiting, asks to declare
func (s *State) SubmitAnswer(answer string, intent Intent) Outcome {
	if intent == IntentNewQuestion {
		s.reset()
		return Outcome{Kind: OutcomeNewQuestion}
	}

	var score ScoreResult
	if intent == IntentAnswer {
		// Explicitly declared an answer: grade even if it reads like a question.
		score = scoreCoverage(answer, s.Pending.Expected)
	} else {
		score = ScoreAnswer(answer, s.Pending.Expected)
		if score.LooksLikeNewQuestion {
			return Outcome{
				Kind:     OutcomeNotGraded,
				Score:    &score,
				Feedback: notGradedFeedback(),
			}
		}
	}

	switch {
	case score.Verdict == VerdictCorrect:
		s.reset()
		return Outcome{Kind: OutcomePassed, Score: &score, Feedback: passedFeedback(score)}

	case s.RetriesRemaining > 0:
		s.RetriesRemaining--
		return Outcome{Kind: OutcomeRetry, Score: &score, Feedback: retryFeedback(score, s.Pending.Question)}

	default:
		hints := OutlineHints(s.Pending.Expected)
		feedback := exhaustedFeedback(score, hints)
		s.reset()
		return Outcome{Kind: OutcomeExhausted, Score: &score, Feedback: feedback, OutlineHints: hints}
	}
}

// OutlineHints picks one representative term from each expected group, up to
// MaxOutlineHints, for the "model outline" shown when retries run out.
func OutlineHints(groups []KeywordGroup) []string {
	hints := make([]string, 0, MaxOutlineHints)
	for _, g := range groups {
		if len(g) == 0 {
			continue
		}
		hints = append(hints, g[0])
		if len(hints) == MaxOutlineHints {
			break
		}
	}
	return hints
}

func passedFeedback(score ScoreResult) string {
	return fmt.Sprintf(
		"Correct! You covered %d of %d key ideas. Ask your next question whenever you are ready.",
		len(score.Satisfied), len(score.Satisfied)+len(score.Missing),
	)
}

func retryFeedback(score ScoreResult, question string) string {
	var b strings.Builder
	if score.Verdict == VerdictPartlyCorrect {
		fmt.Fprintf(&b, "Almost there. You covered %d of %d key ideas.",
			len(score.Satisfied), len(score.Satisfied)+len(score.Missing))
	} else {
		b.WriteString("Not quite. Think about the key ideas the question asks for.")
	}
	b.WriteString(" Try once more:\n\n")
	b.WriteString(question)
	return b.String()
}

func exhaustedFeedback(score ScoreResult, hints []string) string {
	var b strings.Builder
	b.WriteString("Let's move on. A strong answer would mention: ")
	for i, h := range hints {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(h)
	}
	b.WriteString(". Ask your next question whenever you are ready.")
	return b.String()
}

func notGradedFeedback() string {
	return "That looks like a new question rather than an answer to the follow-up. " +
		"Send it again marked as a new question, or reply with your answer to the follow-up."
}

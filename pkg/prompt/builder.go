package prompt

import (
	"fmt"
	"strings"

	"exam-companion-be/internal/constant"
	"exam-companion-be/internal/entity"
)

// HistoryWindow caps how many recent messages reach the model.
const HistoryWindow = 8

// TutorBuilder assembles the system and user prompts for a tutoring turn.
type TutorBuilder struct {
	level     string
	subject   string
	studyLoop bool
	question  string
	history   []*entity.ChatMessage
}

func NewTutorBuilder(level, subject string, studyLoop bool, question string, history []*entity.ChatMessage) *TutorBuilder {
	return &TutorBuilder{
		level:     level,
		subject:   subject,
		studyLoop: studyLoop,
		question:  question,
		history:   history,
	}
}

// BuildSystem creates the system prompt: tutor boundaries, session context
// and subject guidance.
func (b *TutorBuilder) BuildSystem() string {
	var prompt strings.Builder

	b.writeBoundaries(&prompt)
	b.writeContext(&prompt)
	b.writeGuidance(&prompt)

	return strings.TrimSpace(prompt.String())
}

// BuildUser creates the user prompt: the student question plus a capped
// window of recent history.
func (b *TutorBuilder) BuildUser() string {
	var prompt strings.Builder

	prompt.WriteString("Student question: ")
	prompt.WriteString(b.question)

	b.writeHistory(&prompt)

	return prompt.String()
}

func (b *TutorBuilder) writeBoundaries(prompt *strings.Builder) {
	prompt.WriteString(constant.TutorSystemPromptHeader)
	prompt.WriteString("\n\n")
}

func (b *TutorBuilder) writeContext(prompt *strings.Builder) {
	studyLoop := "OFF"
	if b.studyLoop {
		studyLoop = "ON"
	}

	prompt.WriteString("CONTEXT:\n")
	fmt.Fprintf(prompt, "Level: %s\n", b.level)
	fmt.Fprintf(prompt, "Subject: %s\n", b.subject)
	fmt.Fprintf(prompt, "Study Loop: %s\n", studyLoop)
}

func (b *TutorBuilder) writeGuidance(prompt *strings.Builder) {
	prompt.WriteString("\n")
	prompt.WriteString(constant.ExamApproachGuidance)

	if tips, ok := constant.SubjectGuidanceTips[b.subject]; ok {
		prompt.WriteString("\n\n")
		prompt.WriteString(tips)
	}
}

func (b *TutorBuilder) writeHistory(prompt *strings.Builder) {
	if len(b.history) == 0 {
		return
	}

	window := b.history
	if len(window) > HistoryWindow {
		window = window[len(window)-HistoryWindow:]
	}

	prompt.WriteString("\n\nRecent chat history (most recent last):\n")
	for _, msg := range window {
		speaker := "Tutor"
		if msg.Role == constant.ChatMessageRoleStudent {
			speaker = "Student"
		}
		fmt.Fprintf(prompt, "%s: %s\n", speaker, msg.Text)
	}
}

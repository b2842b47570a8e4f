package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	Level            string `json:"level" validate:"required"`
	Subject          string `json:"subject" validate:"required"`
	StudyLoopEnabled bool   `json:"study_loop_enabled"`
}

type CreateSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

type GetAllSessionsResponse struct {
	Id               uuid.UUID  `json:"id"`
	Title            string     `json:"title"`
	Level            string     `json:"level"`
	Subject          string     `json:"subject"`
	StudyLoopEnabled bool       `json:"study_loop_enabled"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at"`
}

// UpdateSessionRequest replaces the session settings in full.
type UpdateSessionRequest struct {
	Level            string `json:"level" validate:"required"`
	Subject          string `json:"subject" validate:"required"`
	StudyLoopEnabled bool   `json:"study_loop_enabled"`
}

type GetChatHistoryResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Chat      string    `json:"chat"`
	CreatedAt time.Time `json:"created_at"`
}

type SendChatRequest struct {
	ChatSessionId uuid.UUID `json:"chat_session_id" validate:"required"`
	Chat          string    `json:"chat" validate:"required"`
	// Intent disambiguates a reply while a follow-up question is pending:
	// "answer" grades the text as-is, "question" starts a fresh question.
	// Empty lets the server decide.
	Intent string `json:"intent,omitempty" validate:"omitempty,oneof=answer question"`
}

type SendChatResponseChat struct {
	Id        uuid.UUID `json:"id"`
	Chat      string    `json:"chat"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type StudyLoopResultDTO struct {
	Verdict          string   `json:"verdict"` // correct, partly_correct, incorrect, not_graded
	Coverage         float64  `json:"coverage"`
	RetriesRemaining int      `json:"retries_remaining"`
	OutlineHints     []string `json:"outline_hints,omitempty"`
}

type SendChatResponse struct {
	ChatSessionId    uuid.UUID             `json:"chat_session_id"`
	ChatSessionTitle string                `json:"title"`
	Sent             *SendChatResponseChat `json:"sent"`
	Reply            *SendChatResponseChat `json:"reply"`
	FollowUpQuestion string                `json:"follow_up_question,omitempty"`
	StudyLoop        *StudyLoopResultDTO   `json:"study_loop,omitempty"`
}

type DeleteSessionRequest struct {
	ChatSessionId uuid.UUID `json:"chat_session_id"`
}

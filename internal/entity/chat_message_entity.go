package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one transcript entry. Messages are never mutated after
// creation.
type ChatMessage struct {
	Id            uuid.UUID
	Role          string
	Text          string
	AttachmentURL *string
	ChatSessionId uuid.UUID
	CreatedAt     time.Time
	DeletedAt     *time.Time
	IsDeleted     bool
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatSession is one revision conversation, scoped to the settings the
// student picked. Settings are mutable; the transcript is append-only.
type ChatSession struct {
	Id               uuid.UUID
	AccessCodeId     uuid.UUID
	Title            string
	Level            string
	Subject          string
	StudyLoopEnabled bool
	CreatedAt        time.Time
	UpdatedAt        *time.Time
	DeletedAt        *time.Time
	IsDeleted        bool
}

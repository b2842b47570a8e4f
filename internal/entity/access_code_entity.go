package entity

import (
	"time"

	"github.com/google/uuid"
)

type AccessCodeStatus string

const (
	AccessCodeStatusActive   AccessCodeStatus = "ACTIVE"
	AccessCodeStatusDisabled AccessCodeStatus = "DISABLED"
)

// AccessCode is a per-school code that gates the chat. Codes are disabled,
// never deleted, so the registry keeps an audit trail.
type AccessCode struct {
	Id            uuid.UUID
	Code          string
	SchoolName    string
	AllowedLevels string // comma-separated level names
	Status        AccessCodeStatus
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

func (a *AccessCode) IsActive() bool {
	return a.Status == AccessCodeStatusActive
}

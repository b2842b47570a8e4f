package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByChatSessionID struct {
	ChatSessionID uuid.UUID
}

func (s ByChatSessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_session_id = ?", s.ChatSessionID)
}

// OwnedByAccessCode scopes sessions to the school code that created them.
type OwnedByAccessCode struct {
	AccessCodeID uuid.UUID
}

func (s OwnedByAccessCode) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("access_code_id = ?", s.AccessCodeID)
}

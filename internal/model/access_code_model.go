package model

import (
	"time"

	"github.com/google/uuid"
)

type AccessCode struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code          string    `gorm:"type:text;not null;uniqueIndex"`
	SchoolName    string    `gorm:"type:text;not null"`
	AllowedLevels string    `gorm:"type:text;not null;default:''"`
	Status        string    `gorm:"type:text;not null;default:'ACTIVE';index"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (AccessCode) TableName() string {
	return "access_codes"
}

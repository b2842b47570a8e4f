package dto

import (
	"time"

	"github.com/google/uuid"
)

type AdminLoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type AdminLoginResponse struct {
	Token string `json:"token"`
}

type CreateAccessCodeRequest struct {
	// Code is optional. When empty a random code is generated.
	Code          string   `json:"code,omitempty"`
	SchoolName    string   `json:"school_name" validate:"required"`
	AllowedLevels []string `json:"allowed_levels" validate:"required,min=1,dive,required"`
}

type AccessCodeResponse struct {
	Id            uuid.UUID  `json:"id"`
	Code          string     `json:"code"`
	SchoolName    string     `json:"school_name"`
	AllowedLevels []string   `json:"allowed_levels"`
	Status        string     `json:"status"` // ACTIVE, DISABLED
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`
}

type AccessCodeListRequest struct {
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
	Status string `query:"status"`
}

type AccessCodeListResponse struct {
	Items []AccessCodeResponse `json:"items"`
	Total int64                `json:"total"`
}

// --- System Log DTOs ---

// Log IDs are MD5 hashes derived from file offsets, not UUIDs.

type LogListResponse struct {
	Id        string    `json:"id"`
	Level     string    `json:"level"`
	Module    string    `json:"module"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type LogDetailResponse struct {
	LogListResponse
	Details map[string]interface{} `json:"details"`
}

package mapper

import (
	"time"

	"exam-companion-be/internal/entity"
	"exam-companion-be/internal/model"
)

type AccessCodeMapper struct{}

func NewAccessCodeMapper() *AccessCodeMapper {
	return &AccessCodeMapper{}
}

func (m *AccessCodeMapper) ToEntity(a *model.AccessCode) *entity.AccessCode {
	if a == nil {
		return nil
	}

	var updatedAt *time.Time
	if !a.UpdatedAt.IsZero() {
		t := a.UpdatedAt
		updatedAt = &t
	}

	return &entity.AccessCode{
		Id:            a.Id,
		Code:          a.Code,
		SchoolName:    a.SchoolName,
		AllowedLevels: a.AllowedLevels,
		Status:        entity.AccessCodeStatus(a.Status),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *AccessCodeMapper) ToModel(a *entity.AccessCode) *model.AccessCode {
	if a == nil {
		return nil
	}

	var updatedAt time.Time
	if a.UpdatedAt != nil {
		updatedAt = *a.UpdatedAt
	}

	return &model.AccessCode{
		Id:            a.Id,
		Code:          a.Code,
		SchoolName:    a.SchoolName,
		AllowedLevels: a.AllowedLevels,
		Status:        string(a.Status),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *AccessCodeMapper) ToEntities(models []*model.AccessCode) []*entity.AccessCode {
	entities := make([]*entity.AccessCode, len(models))
	for i, a := range models {
		entities[i] = m.ToEntity(a)
	}
	return entities
}

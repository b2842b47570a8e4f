package contract

import (
	"context"

	"exam-companion-be/internal/entity"
	"exam-companion-be/internal/repository/specification"
)

type AccessCodeRepository interface {
	Create(ctx context.Context, code *entity.AccessCode) error
	Update(ctx context.Context, code *entity.AccessCode) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AccessCode, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AccessCode, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

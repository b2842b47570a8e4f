package implementation

import (
	"context"
	"errors"

	"exam-companion-be/internal/entity"
	"exam-companion-be/internal/mapper"
	"exam-companion-be/internal/model"
	"exam-companion-be/internal/repository/contract"
	"exam-companion-be/internal/repository/specification"

	"gorm.io/gorm"
)

type AccessCodeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AccessCodeMapper
}

func NewAccessCodeRepository(db *gorm.DB) contract.AccessCodeRepository {
	return &AccessCodeRepositoryImpl{
		db:     db,
		mapper: mapper.NewAccessCodeMapper(),
	}
}

func (r *AccessCodeRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AccessCodeRepositoryImpl) Create(ctx context.Context, code *entity.AccessCode) error {
	m := r.mapper.ToModel(code)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*code = *r.mapper.ToEntity(m)
	return nil
}

func (r *AccessCodeRepositoryImpl) Update(ctx context.Context, code *entity.AccessCode) error {
	m := r.mapper.ToModel(code)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*code = *r.mapper.ToEntity(m)
	return nil
}

func (r *AccessCodeRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AccessCode, error) {
	var m model.AccessCode
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *AccessCodeRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AccessCode, error) {
	var models []*model.AccessCode
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *AccessCodeRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.AccessCode{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

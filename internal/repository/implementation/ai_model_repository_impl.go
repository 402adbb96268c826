package implementation

import (
	"context"
	"errors"

	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/mapper"
	"rag-admin-be/internal/model"
	"rag-admin-be/internal/repository/contract"
	"rag-admin-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AIModelRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AIModelMapper
}

func NewAIModelRepository(db *gorm.DB) contract.AIModelRepository {
	return &AIModelRepositoryImpl{
		db:     db,
		mapper: mapper.NewAIModelMapper(),
	}
}

func (r *AIModelRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AIModelRepositoryImpl) Create(ctx context.Context, m *entity.AIModel) error {
	mdl := r.mapper.ToModel(m)
	if err := r.db.WithContext(ctx).Create(mdl).Error; err != nil {
		return err
	}
	*m = *r.mapper.ToEntity(mdl)
	return nil
}

func (r *AIModelRepositoryImpl) Update(ctx context.Context, m *entity.AIModel) error {
	mdl := r.mapper.ToModel(m)
	if err := r.db.WithContext(ctx).Save(mdl).Error; err != nil {
		return err
	}
	*m = *r.mapper.ToEntity(mdl)
	return nil
}

func (r *AIModelRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.AIModel{}, id).Error
}

func (r *AIModelRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AIModel, error) {
	var m model.AIModel
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *AIModelRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AIModel, error) {
	var models []*model.AIModel
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *AIModelRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.AIModel{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *AIModelRepositoryImpl) ClearDefault(ctx context.Context, kind entity.ModelKind) error {
	return r.db.WithContext(ctx).
		Model(&model.AIModel{}).
		Where("kind = ? AND is_default = ?", string(kind), true).
		Update("is_default", false).Error
}

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

type ChatEngineRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatEngineMapper
}

func NewChatEngineRepository(db *gorm.DB) contract.ChatEngineRepository {
	return &ChatEngineRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatEngineMapper(),
	}
}

func (r *ChatEngineRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChatEngineRepositoryImpl) Create(ctx context.Context, engine *entity.ChatEngine) error {
	m := r.mapper.ToModel(engine)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*engine = *r.mapper.ToEntity(m)
	return nil
}

func (r *ChatEngineRepositoryImpl) Update(ctx context.Context, engine *entity.ChatEngine) error {
	m := r.mapper.ToModel(engine)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*engine = *r.mapper.ToEntity(m)
	return nil
}

func (r *ChatEngineRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ChatEngine{}, id).Error
}

func (r *ChatEngineRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatEngine, error) {
	var m model.ChatEngine
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ChatEngineRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatEngine, error) {
	var models []*model.ChatEngine
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ChatEngineRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ChatEngine{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ChatEngineRepositoryImpl) ClearDefault(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Model(&model.ChatEngine{}).
		Where("is_default = ?", true).
		Update("is_default", false).Error
}

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

type DatasourceRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DatasourceMapper
}

func NewDatasourceRepository(db *gorm.DB) contract.DatasourceRepository {
	return &DatasourceRepositoryImpl{
		db:     db,
		mapper: mapper.NewDatasourceMapper(),
	}
}

func (r *DatasourceRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DatasourceRepositoryImpl) Create(ctx context.Context, ds *entity.Datasource) error {
	m := r.mapper.ToModel(ds)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*ds = *r.mapper.ToEntity(m)
	return nil
}

func (r *DatasourceRepositoryImpl) Update(ctx context.Context, ds *entity.Datasource) error {
	m := r.mapper.ToModel(ds)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*ds = *r.mapper.ToEntity(m)
	return nil
}

func (r *DatasourceRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Datasource{}, id).Error
}

func (r *DatasourceRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Datasource, error) {
	var m model.Datasource
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *DatasourceRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Datasource, error) {
	var models []*model.Datasource
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *DatasourceRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Datasource{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *DatasourceRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.IngestStatus, lastError *string) error {
	return r.db.WithContext(ctx).
		Model(&model.Datasource{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(status),
			"last_error": lastError,
		}).Error
}

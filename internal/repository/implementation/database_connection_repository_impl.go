package implementation

import (
	"context"
	"errors"
	"time"

	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/mapper"
	"rag-admin-be/internal/model"
	"rag-admin-be/internal/repository/contract"
	"rag-admin-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DatabaseConnectionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DatabaseConnectionMapper
}

func NewDatabaseConnectionRepository(db *gorm.DB) contract.DatabaseConnectionRepository {
	return &DatabaseConnectionRepositoryImpl{
		db:     db,
		mapper: mapper.NewDatabaseConnectionMapper(),
	}
}

func (r *DatabaseConnectionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DatabaseConnectionRepositoryImpl) Create(ctx context.Context, conn *entity.DatabaseConnection) error {
	m := r.mapper.ToModel(conn)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*conn = *r.mapper.ToEntity(m)
	return nil
}

func (r *DatabaseConnectionRepositoryImpl) Update(ctx context.Context, conn *entity.DatabaseConnection) error {
	m := r.mapper.ToModel(conn)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*conn = *r.mapper.ToEntity(m)
	return nil
}

func (r *DatabaseConnectionRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.DatabaseConnection{}, id).Error
}

func (r *DatabaseConnectionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DatabaseConnection, error) {
	var m model.DatabaseConnection
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *DatabaseConnectionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DatabaseConnection, error) {
	var models []*model.DatabaseConnection
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *DatabaseConnectionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.DatabaseConnection{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *DatabaseConnectionRepositoryImpl) UpdateLastTested(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.DatabaseConnection{}).
		Where("id = ?", id).
		Update("last_tested_at", at).Error
}

func (r *DatabaseConnectionRepositoryImpl) CreateQueryRecord(ctx context.Context, record *entity.SQLQueryRecord) error {
	m := r.mapper.QueryRecordToModel(record)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.QueryRecordToEntity(m)
	return nil
}

func (r *DatabaseConnectionRepositoryImpl) FindQueryRecords(ctx context.Context, specs ...specification.Specification) ([]*entity.SQLQueryRecord, error) {
	var models []*model.SQLQueryRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.QueryRecordsToEntities(models), nil
}

func (r *DatabaseConnectionRepositoryImpl) CountQueryRecords(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.SQLQueryRecord{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

package implementation

import (
	"context"
	"errors"

	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/mapper"
	"rag-admin-be/internal/model"
	"rag-admin-be/internal/repository/contract"
	"rag-admin-be/internal/repository/specification"

	"gorm.io/gorm"
)

type SiteSettingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SiteSettingMapper
}

func NewSiteSettingRepository(db *gorm.DB) contract.SiteSettingRepository {
	return &SiteSettingRepositoryImpl{
		db:     db,
		mapper: mapper.NewSiteSettingMapper(),
	}
}

func (r *SiteSettingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SiteSettingRepositoryImpl) Upsert(ctx context.Context, setting *entity.SiteSetting) error {
	var existing model.SiteSetting
	err := r.db.WithContext(ctx).Where("name = ?", setting.Name).First(&existing).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	m := r.mapper.ToModel(setting)
	if err == nil {
		m.Id = existing.Id
		m.CreatedAt = existing.CreatedAt
		if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
			return err
		}
	} else {
		if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
			return err
		}
	}
	*setting = *r.mapper.ToEntity(m)
	return nil
}

func (r *SiteSettingRepositoryImpl) DeleteByName(ctx context.Context, name string) error {
	return r.db.WithContext(ctx).Where("name = ?", name).Delete(&model.SiteSetting{}).Error
}

func (r *SiteSettingRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SiteSetting, error) {
	var m model.SiteSetting
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SiteSettingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SiteSetting, error) {
	var models []*model.SiteSetting
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

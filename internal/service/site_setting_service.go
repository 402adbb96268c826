// FILE: internal/service/site_setting_service.go
package service

import (
	"context"
	"encoding/json"
	"time"

	"rag-admin-be/internal/dto"
	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/pkg/apperrors"
	"rag-admin-be/internal/repository/specification"
	"rag-admin-be/internal/repository/unitofwork"
	"rag-admin-be/pkg/admin/mapper"
	"rag-admin-be/pkg/settingval"

	"github.com/google/uuid"
)

// ISiteSettingService reads and writes site settings. The registry in
// pkg/settingval declares every known setting; the database holds only
// the overridden ones, so reads merge the two.
type ISiteSettingService interface {
	FindAll(ctx context.Context) (map[string][]*dto.SiteSettingResponse, error)
	FindOne(ctx context.Context, name string) (*dto.SiteSettingResponse, error)
	Update(ctx context.Context, name string, req *dto.UpdateSettingRequest) (*dto.SiteSettingResponse, error)
	Reset(ctx context.Context, name string) (*dto.SiteSettingResponse, error)
}

type siteSettingService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewSiteSettingService(uowFactory unitofwork.RepositoryFactory) ISiteSettingService {
	return &siteSettingService{uowFactory: uowFactory}
}

func (s *siteSettingService) FindAll(ctx context.Context) (map[string][]*dto.SiteSettingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	stored, err := uow.SiteSettingRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	overrides := make(map[string]*entity.SiteSetting, len(stored))
	for _, setting := range stored {
		overrides[setting.Name] = setting
	}

	grouped := make(map[string][]*dto.SiteSettingResponse)
	for _, def := range settingval.All() {
		merged := mergeSetting(def, overrides[def.Name])
		grouped[def.Group] = append(grouped[def.Group], mapper.SettingToResponse(merged))
	}
	return grouped, nil
}

func (s *siteSettingService) FindOne(ctx context.Context, name string) (*dto.SiteSettingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	def, ok := settingval.Lookup(name)
	if !ok {
		return nil, apperrors.NotFound("setting not found")
	}
	stored, err := uow.SiteSettingRepository().FindOne(ctx, specification.ByName{Name: name})
	if err != nil {
		return nil, err
	}
	return mapper.SettingToResponse(mergeSetting(def, stored)), nil
}

func (s *siteSettingService) Update(ctx context.Context, name string, req *dto.UpdateSettingRequest) (*dto.SiteSettingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	def, ok := settingval.Lookup(name)
	if !ok {
		return nil, apperrors.NotFound("setting not found")
	}
	stored, err := uow.SiteSettingRepository().FindOne(ctx, specification.ByName{Name: name})
	if err != nil {
		return nil, err
	}

	var value interface{}
	if req.Path != "" {
		if def.DataType != entity.SettingTypeJSON {
			return nil, apperrors.InvalidInput("path writes require a json setting")
		}
		current := def.DefaultValue
		if stored != nil {
			current = stored.Value
		}
		// Registry defaults share their maps and slices; mutate a copy.
		updated, changed, err := settingval.SetPath(cloneValue(current), req.Path, req.Value)
		if err != nil {
			return nil, apperrors.InvalidInput(err.Error())
		}
		if !changed {
			return mapper.SettingToResponse(mergeSetting(def, stored)), nil
		}
		value = updated
	} else {
		coerced, err := settingval.Coerce(def.DataType, req.Value)
		if err != nil {
			return nil, apperrors.InvalidInput(err.Error())
		}
		value = coerced
	}

	now := time.Now()
	override := stored
	if override == nil {
		override = &entity.SiteSetting{
			Id:        uuid.New(),
			Name:      def.Name,
			CreatedAt: now,
		}
	}
	override.Group = def.Group
	override.DataType = def.DataType
	override.Value = value
	override.DefaultValue = def.DefaultValue
	override.Description = def.Description
	override.UpdatedAt = now

	if err := uow.SiteSettingRepository().Upsert(ctx, override); err != nil {
		return nil, err
	}
	return mapper.SettingToResponse(mergeSetting(def, override)), nil
}

// Reset drops the stored override so the setting answers with its
// registry default again.
func (s *siteSettingService) Reset(ctx context.Context, name string) (*dto.SiteSettingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	def, ok := settingval.Lookup(name)
	if !ok {
		return nil, apperrors.NotFound("setting not found")
	}
	if err := uow.SiteSettingRepository().DeleteByName(ctx, name); err != nil {
		return nil, err
	}
	return mapper.SettingToResponse(mergeSetting(def, nil)), nil
}

// mergeSetting builds the effective setting from the registry definition
// and an optional stored override. The registry always wins for group,
// type, default and description; only the value comes from the override.
func mergeSetting(def settingval.Definition, stored *entity.SiteSetting) *entity.SiteSetting {
	merged := &entity.SiteSetting{
		Name:         def.Name,
		Group:        def.Group,
		DataType:     def.DataType,
		Value:        def.DefaultValue,
		DefaultValue: def.DefaultValue,
		Description:  def.Description,
	}
	if stored != nil {
		merged.Id = stored.Id
		merged.Value = stored.Value
		merged.CreatedAt = stored.CreatedAt
		merged.UpdatedAt = stored.UpdatedAt
	}
	return merged
}

func cloneValue(v interface{}) interface{} {
	if v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return v
	}
	return out
}

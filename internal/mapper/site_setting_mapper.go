package mapper

import (
	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/model"
)

type SiteSettingMapper struct{}

func NewSiteSettingMapper() *SiteSettingMapper {
	return &SiteSettingMapper{}
}

func (m *SiteSettingMapper) ToEntity(s *model.SiteSetting) *entity.SiteSetting {
	if s == nil {
		return nil
	}

	var value interface{}
	unmarshalJSON(s.Value, &value)

	var defaultValue interface{}
	unmarshalJSON(s.DefaultValue, &defaultValue)

	return &entity.SiteSetting{
		Id:           s.Id,
		Name:         s.Name,
		Group:        s.Group,
		DataType:     entity.SettingDataType(s.DataType),
		Value:        value,
		DefaultValue: defaultValue,
		Description:  s.Description,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func (m *SiteSettingMapper) ToModel(s *entity.SiteSetting) *model.SiteSetting {
	if s == nil {
		return nil
	}
	return &model.SiteSetting{
		Id:           s.Id,
		Name:         s.Name,
		Group:        s.Group,
		DataType:     string(s.DataType),
		Value:        marshalJSON(s.Value),
		DefaultValue: marshalJSON(s.DefaultValue),
		Description:  s.Description,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func (m *SiteSettingMapper) ToEntities(settings []*model.SiteSetting) []*entity.SiteSetting {
	entities := make([]*entity.SiteSetting, len(settings))
	for i, s := range settings {
		entities[i] = m.ToEntity(s)
	}
	return entities
}

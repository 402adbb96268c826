package mapper

import (
	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/model"
)

type AIModelMapper struct{}

func NewAIModelMapper() *AIModelMapper {
	return &AIModelMapper{}
}

func (m *AIModelMapper) ToEntity(am *model.AIModel) *entity.AIModel {
	if am == nil {
		return nil
	}

	var params map[string]interface{}
	unmarshalJSON(am.Params, &params)

	return &entity.AIModel{
		Id:          am.Id,
		Kind:        entity.ModelKind(am.Kind),
		Name:        am.Name,
		Provider:    entity.ModelProvider(am.Provider),
		Model:       am.Model,
		BaseURL:     am.BaseURL,
		Params:      params,
		Credentials: am.Credentials,
		IsDefault:   am.IsDefault,
		CreatedAt:   am.CreatedAt,
		UpdatedAt:   am.UpdatedAt,
	}
}

func (m *AIModelMapper) ToModel(am *entity.AIModel) *model.AIModel {
	if am == nil {
		return nil
	}
	return &model.AIModel{
		Id:          am.Id,
		Kind:        string(am.Kind),
		Name:        am.Name,
		Provider:    string(am.Provider),
		Model:       am.Model,
		BaseURL:     am.BaseURL,
		Params:      marshalJSON(am.Params),
		Credentials: am.Credentials,
		IsDefault:   am.IsDefault,
		CreatedAt:   am.CreatedAt,
		UpdatedAt:   am.UpdatedAt,
	}
}

func (m *AIModelMapper) ToEntities(models []*model.AIModel) []*entity.AIModel {
	entities := make([]*entity.AIModel, len(models))
	for i, am := range models {
		entities[i] = m.ToEntity(am)
	}
	return entities
}

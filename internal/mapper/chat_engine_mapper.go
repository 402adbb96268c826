package mapper

import (
	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/model"
)

type ChatEngineMapper struct{}

func NewChatEngineMapper() *ChatEngineMapper {
	return &ChatEngineMapper{}
}

func (m *ChatEngineMapper) ToEntity(ce *model.ChatEngine) *entity.ChatEngine {
	if ce == nil {
		return nil
	}

	var opts entity.EngineOptions
	unmarshalJSON(ce.Options, &opts)

	return &entity.ChatEngine{
		Id:        ce.Id,
		Name:      ce.Name,
		Options:   opts,
		IsDefault: ce.IsDefault,
		CreatedAt: ce.CreatedAt,
		UpdatedAt: ce.UpdatedAt,
	}
}

func (m *ChatEngineMapper) ToModel(ce *entity.ChatEngine) *model.ChatEngine {
	if ce == nil {
		return nil
	}
	return &model.ChatEngine{
		Id:        ce.Id,
		Name:      ce.Name,
		Options:   marshalJSON(ce.Options),
		IsDefault: ce.IsDefault,
		CreatedAt: ce.CreatedAt,
		UpdatedAt: ce.UpdatedAt,
	}
}

func (m *ChatEngineMapper) ToEntities(engines []*model.ChatEngine) []*entity.ChatEngine {
	entities := make([]*entity.ChatEngine, len(engines))
	for i, ce := range engines {
		entities[i] = m.ToEntity(ce)
	}
	return entities
}

package mapper

import (
	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/model"
)

type KnowledgeBaseMapper struct{}

func NewKnowledgeBaseMapper() *KnowledgeBaseMapper {
	return &KnowledgeBaseMapper{}
}

func (m *KnowledgeBaseMapper) ToEntity(kb *model.KnowledgeBase) *entity.KnowledgeBase {
	if kb == nil {
		return nil
	}

	var methods []entity.IndexMethod
	unmarshalJSON(kb.IndexMethods, &methods)

	chunking := entity.DefaultChunkingConfig()
	unmarshalJSON(kb.ChunkingConfig, &chunking)

	return &entity.KnowledgeBase{
		Id:               kb.Id,
		Name:             kb.Name,
		Description:      kb.Description,
		IndexMethods:     methods,
		LLMId:            kb.LLMId,
		EmbeddingModelId: kb.EmbeddingModelId,
		ChunkingConfig:   chunking,
		CreatedAt:        kb.CreatedAt,
		UpdatedAt:        kb.UpdatedAt,
	}
}

func (m *KnowledgeBaseMapper) ToModel(kb *entity.KnowledgeBase) *model.KnowledgeBase {
	if kb == nil {
		return nil
	}
	return &model.KnowledgeBase{
		Id:               kb.Id,
		Name:             kb.Name,
		Description:      kb.Description,
		IndexMethods:     marshalJSON(kb.IndexMethods),
		LLMId:            kb.LLMId,
		EmbeddingModelId: kb.EmbeddingModelId,
		ChunkingConfig:   marshalJSON(kb.ChunkingConfig),
		CreatedAt:        kb.CreatedAt,
		UpdatedAt:        kb.UpdatedAt,
	}
}

func (m *KnowledgeBaseMapper) ToEntities(kbs []*model.KnowledgeBase) []*entity.KnowledgeBase {
	entities := make([]*entity.KnowledgeBase, len(kbs))
	for i, kb := range kbs {
		entities[i] = m.ToEntity(kb)
	}
	return entities
}

func (m *KnowledgeBaseMapper) ToModels(kbs []*entity.KnowledgeBase) []*model.KnowledgeBase {
	models := make([]*model.KnowledgeBase, len(kbs))
	for i, kb := range kbs {
		models[i] = m.ToModel(kb)
	}
	return models
}

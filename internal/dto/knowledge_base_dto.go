// FILE: internal/dto/knowledge_base_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type ChunkingConfigDTO struct {
	ChunkSize    int    `json:"chunk_size" validate:"omitempty,min=100,max=10000"`
	ChunkOverlap int    `json:"chunk_overlap" validate:"omitempty,min=0,max=2000"`
	Separator    string `json:"separator,omitempty"`
}

type CreateKnowledgeBaseRequest struct {
	Name             string             `json:"name" validate:"required,min=1,max=255"`
	Description      string             `json:"description"`
	IndexMethods     []string           `json:"index_methods" validate:"omitempty,dive,oneof=vector knowledge_graph"`
	LLMId            uuid.UUID          `json:"llm_id" validate:"required"`
	EmbeddingModelId uuid.UUID          `json:"embedding_model_id" validate:"required"`
	ChunkingConfig   *ChunkingConfigDTO `json:"chunking_config"`
}

// UpdateKnowledgeBaseRequest deliberately has no embedding model field:
// stored vectors depend on it, so it is immutable after create.
type UpdateKnowledgeBaseRequest struct {
	Name           string             `json:"name" validate:"omitempty,min=1,max=255"`
	Description    *string            `json:"description"`
	IndexMethods   []string           `json:"index_methods" validate:"omitempty,dive,oneof=vector knowledge_graph"`
	LLMId          *uuid.UUID         `json:"llm_id"`
	ChunkingConfig *ChunkingConfigDTO `json:"chunking_config"`
}

type KnowledgeBaseResponse struct {
	Id               uuid.UUID         `json:"id"`
	Name             string            `json:"name"`
	Description      string            `json:"description"`
	IndexMethods     []string          `json:"index_methods"`
	LLMId            uuid.UUID         `json:"llm_id"`
	EmbeddingModelId uuid.UUID         `json:"embedding_model_id"`
	ChunkingConfig   ChunkingConfigDTO `json:"chunking_config"`
	DocumentCount    int64             `json:"document_count"`
	DatasourceCount  int64             `json:"datasource_count"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

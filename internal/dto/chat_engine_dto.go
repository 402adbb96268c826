// FILE: internal/dto/chat_engine_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type RetrievalOptionsDTO struct {
	TopK                 int        `json:"top_k" validate:"omitempty,min=1,max=100"`
	SimilarityThreshold  float64    `json:"similarity_threshold" validate:"omitempty,min=0,max=1"`
	EnableKnowledgeGraph bool       `json:"enable_knowledge_graph"`
	RerankerId           *uuid.UUID `json:"reranker_id"`
}

type EngineOptionsDTO struct {
	LLMId                 *uuid.UUID          `json:"llm_id"`
	FastLLMId             *uuid.UUID          `json:"fast_llm_id"`
	KnowledgeBaseIds      []uuid.UUID         `json:"knowledge_base_ids"`
	DatabaseConnectionIds []uuid.UUID         `json:"database_connection_ids"`
	Retrieval             RetrievalOptionsDTO `json:"retrieval"`
	SystemPrompt          string              `json:"system_prompt"`
	CondensePrompt        string              `json:"condense_prompt"`
	HideSources           bool                `json:"hide_sources"`
}

type CreateChatEngineRequest struct {
	Name      string           `json:"name" validate:"required,min=1,max=255"`
	Options   EngineOptionsDTO `json:"options"`
	IsDefault bool             `json:"is_default"`
}

type UpdateChatEngineRequest struct {
	Name    string            `json:"name" validate:"omitempty,min=1,max=255"`
	Options *EngineOptionsDTO `json:"options"`
}

type ChatEngineResponse struct {
	Id        uuid.UUID        `json:"id"`
	Name      string           `json:"name"`
	Options   EngineOptionsDTO `json:"options"`
	IsDefault bool             `json:"is_default"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

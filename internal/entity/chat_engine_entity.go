package entity

import (
	"time"

	"github.com/google/uuid"
)

// RetrievalOptions controls how the engine pulls context from its
// knowledge bases.
type RetrievalOptions struct {
	TopK                 int        `json:"top_k"`
	SimilarityThreshold  float64    `json:"similarity_threshold"`
	EnableKnowledgeGraph bool       `json:"enable_knowledge_graph"`
	RerankerId           *uuid.UUID `json:"reranker_id,omitempty"`
}

// EngineOptions is the nested engine configuration, stored as JSON.
type EngineOptions struct {
	LLMId                 *uuid.UUID       `json:"llm_id,omitempty"`
	FastLLMId             *uuid.UUID       `json:"fast_llm_id,omitempty"`
	KnowledgeBaseIds      []uuid.UUID      `json:"knowledge_base_ids"`
	DatabaseConnectionIds []uuid.UUID      `json:"database_connection_ids,omitempty"`
	Retrieval             RetrievalOptions `json:"retrieval"`
	SystemPrompt          string           `json:"system_prompt,omitempty"`
	CondensePrompt        string           `json:"condense_prompt,omitempty"`
	HideSources           bool             `json:"hide_sources,omitempty"`
}

// ReferencesDatabaseConnection reports whether the engine routes NL2SQL
// questions at the given connection.
func (o EngineOptions) ReferencesDatabaseConnection(id uuid.UUID) bool {
	for _, c := range o.DatabaseConnectionIds {
		if c == id {
			return true
		}
	}
	return false
}

// ReferencesKnowledgeBase reports whether the engine retrieves from the
// given knowledge base.
func (o EngineOptions) ReferencesKnowledgeBase(id uuid.UUID) bool {
	for _, k := range o.KnowledgeBaseIds {
		if k == id {
			return true
		}
	}
	return false
}

type ChatEngine struct {
	Id        uuid.UUID
	Name      string
	Options   EngineOptions
	IsDefault bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

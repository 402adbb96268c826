package entity

import (
	"time"

	"github.com/google/uuid"
)

type ModelKind string
type ModelProvider string

const (
	ModelKindLLM       ModelKind = "llm"
	ModelKindEmbedding ModelKind = "embedding_model"
	ModelKindReranker  ModelKind = "reranker"

	ModelProviderOpenAI     ModelProvider = "openai"
	ModelProviderOpenAILike ModelProvider = "openai_like"
	ModelProviderGemini     ModelProvider = "gemini"
	ModelProviderOllama     ModelProvider = "ollama"
	ModelProviderJina       ModelProvider = "jina"
)

// AIModel is a configured provider model: an LLM, an embedding model or a
// reranker. Kind discriminates, the rest of the shape is shared.
type AIModel struct {
	Id          uuid.UUID
	Kind        ModelKind
	Name        string
	Provider    ModelProvider
	Model       string // provider-side identifier, e.g. "gpt-4o-mini"
	BaseURL     string
	Params      map[string]interface{}
	Credentials *string // write-only secret, masked on read
	IsDefault   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (k ModelKind) Valid() bool {
	switch k {
	case ModelKindLLM, ModelKindEmbedding, ModelKindReranker:
		return true
	}
	return false
}

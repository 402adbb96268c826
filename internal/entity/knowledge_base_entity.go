package entity

import (
	"time"

	"github.com/google/uuid"
)

type IndexMethod string

const (
	IndexMethodVector         IndexMethod = "vector"
	IndexMethodKnowledgeGraph IndexMethod = "knowledge_graph"
)

// ChunkingConfig is stored as a JSON column on the knowledge base.
type ChunkingConfig struct {
	ChunkSize    int    `json:"chunk_size"`
	ChunkOverlap int    `json:"chunk_overlap"`
	Separator    string `json:"separator,omitempty"`
}

func DefaultChunkingConfig() ChunkingConfig {
	return ChunkingConfig{ChunkSize: 1200, ChunkOverlap: 200}
}

type KnowledgeBase struct {
	Id               uuid.UUID
	Name             string
	Description      string
	IndexMethods     []IndexMethod
	LLMId            uuid.UUID
	EmbeddingModelId uuid.UUID // immutable after create, stored vectors depend on it
	ChunkingConfig   ChunkingConfig
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NormalizeIndexMethods deduplicates and ensures knowledge_graph always
// comes with vector, since graph retrieval works on top of embeddings.
func NormalizeIndexMethods(methods []IndexMethod) []IndexMethod {
	seen := map[IndexMethod]bool{}
	out := make([]IndexMethod, 0, len(methods)+1)
	add := func(m IndexMethod) {
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	for _, m := range methods {
		if m == IndexMethodKnowledgeGraph {
			add(IndexMethodVector)
		}
		add(m)
	}
	if len(out) == 0 {
		add(IndexMethodVector)
	}
	return out
}

func HasIndexMethod(methods []IndexMethod, m IndexMethod) bool {
	for _, v := range methods {
		if v == m {
			return true
		}
	}
	return false
}

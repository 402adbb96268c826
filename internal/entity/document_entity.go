package entity

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id              uuid.UUID
	KnowledgeBaseId uuid.UUID
	DatasourceId    uuid.UUID
	Name            string
	MimeType        string
	SourceURI       string
	Content         string
	SizeBytes       int64
	IndexStatus     IngestStatus
	IndexError      *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EmbeddingDimension is fixed for every stored vector. Changing it requires
// re-embedding every chunk and graph node, so it is not configurable.
const EmbeddingDimension = 1536

type Chunk struct {
	Id              uuid.UUID
	DocumentId      uuid.UUID
	KnowledgeBaseId uuid.UUID
	Ordinal         int
	Text            string
	Embedding       []float32 // nil when the embedding provider was unreachable
	CreatedAt       time.Time
}

// FILE: internal/dto/document_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type DocumentResponse struct {
	Id              uuid.UUID `json:"id"`
	KnowledgeBaseId uuid.UUID `json:"knowledge_base_id"`
	DatasourceId    uuid.UUID `json:"datasource_id"`
	Name            string    `json:"name"`
	MimeType        string    `json:"mime_type"`
	SourceURI       string    `json:"source_uri,omitempty"`
	SizeBytes       int64     `json:"size_bytes"`
	IndexStatus     string    `json:"index_status"`
	IndexError      *string   `json:"index_error,omitempty"`
	ChunkCount      int64     `json:"chunk_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type ChunkResponse struct {
	Id         uuid.UUID `json:"id"`
	DocumentId uuid.UUID `json:"document_id"`
	Ordinal    int       `json:"ordinal"`
	Text       string    `json:"text"`
	HasVector  bool      `json:"has_vector"`
	CreatedAt  time.Time `json:"created_at"`
}

// ChunkPreviewResponse is the hover card behind a knowledge://chunk/{id}
// citation: the chunk text plus where it came from.
type ChunkPreviewResponse struct {
	Id                uuid.UUID `json:"id"`
	Text              string    `json:"text"`
	DocumentId        uuid.UUID `json:"document_id"`
	DocumentName      string    `json:"document_name"`
	KnowledgeBaseId   uuid.UUID `json:"knowledge_base_id"`
	KnowledgeBaseName string    `json:"knowledge_base_name"`
	SourceURI         string    `json:"source_uri,omitempty"`
}

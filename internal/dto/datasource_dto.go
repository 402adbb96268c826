// FILE: internal/dto/datasource_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateDatasourceRequest covers url and sitemap sources; file sources
// arrive as multipart uploads and only carry name + source_type fields.
type CreateDatasourceRequest struct {
	Name       string `json:"name" form:"name" validate:"required,min=1,max=255"`
	SourceType string `json:"source_type" form:"source_type" validate:"required,oneof=file url sitemap"`
	URL        string `json:"url" form:"url" validate:"omitempty,url"`
}

type DatasourceResponse struct {
	Id              uuid.UUID `json:"id"`
	KnowledgeBaseId uuid.UUID `json:"knowledge_base_id"`
	Name            string    `json:"name"`
	SourceType      string    `json:"source_type"`
	URL             string    `json:"url,omitempty"`
	FileName        string    `json:"file_name,omitempty"`
	Status          string    `json:"status"`
	LastError       *string   `json:"last_error,omitempty"`
	DocumentCount   int64     `json:"document_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

type DatasourceType string
type IngestStatus string

const (
	DatasourceTypeFile    DatasourceType = "file"
	DatasourceTypeURL     DatasourceType = "url"
	DatasourceTypeSitemap DatasourceType = "sitemap"

	IngestStatusPending   IngestStatus = "pending"
	IngestStatusRunning   IngestStatus = "running"
	IngestStatusCompleted IngestStatus = "completed"
	IngestStatusFailed    IngestStatus = "failed"
)

// DatasourceConfig is the type-specific part of a datasource, stored as JSON.
// Exactly one group of fields is populated depending on Type.
type DatasourceConfig struct {
	FileName   string `json:"file_name,omitempty"`
	FilePath   string `json:"file_path,omitempty"`
	URL        string `json:"url,omitempty"`
	SitemapURL string `json:"sitemap_url,omitempty"`
}

type Datasource struct {
	Id              uuid.UUID
	KnowledgeBaseId uuid.UUID
	Name            string
	Type            DatasourceType
	Config          DatasourceConfig
	Status          IngestStatus
	LastError       *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

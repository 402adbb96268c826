package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type Document struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	KnowledgeBaseId uuid.UUID      `gorm:"type:uuid;not null;index"`
	DatasourceId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name            string         `gorm:"type:varchar(512);not null"`
	MimeType        string         `gorm:"type:varchar(128)"`
	SourceURI       string         `gorm:"type:text"`
	Content         string         `gorm:"type:text"`
	SizeBytes       int64          `gorm:"default:0"`
	IndexStatus     string         `gorm:"type:varchar(50);not null;default:'pending'"`
	IndexError      *string        `gorm:"type:text"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (Document) TableName() string {
	return "documents"
}

type Chunk struct {
	Id              uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId      uuid.UUID        `gorm:"type:uuid;not null;index"`
	KnowledgeBaseId uuid.UUID        `gorm:"type:uuid;not null;index"`
	Ordinal         int              `gorm:"default:0"`
	Text            string           `gorm:"type:text;not null"`
	Embedding       *pgvector.Vector `gorm:"type:vector(1536)"`
	CreatedAt       time.Time        `gorm:"autoCreateTime"`
}

func (Chunk) TableName() string {
	return "chunks"
}

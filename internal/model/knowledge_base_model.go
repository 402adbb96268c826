package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type KnowledgeBase struct {
	Id               uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name             string         `gorm:"type:varchar(255);not null"`
	Description      string         `gorm:"type:text"`
	IndexMethods     datatypes.JSON `gorm:"type:jsonb;not null"`
	LLMId            uuid.UUID      `gorm:"type:uuid;not null;index"`
	EmbeddingModelId uuid.UUID      `gorm:"type:uuid;not null;index"`
	ChunkingConfig   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt        time.Time      `gorm:"autoCreateTime"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime"`
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (KnowledgeBase) TableName() string {
	return "knowledge_bases"
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type GraphNode struct {
	Id              uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	KnowledgeBaseId uuid.UUID        `gorm:"type:uuid;not null;index"`
	Name            string           `gorm:"type:varchar(512);not null;index"`
	Description     string           `gorm:"type:text"`
	Meta            datatypes.JSON   `gorm:"type:jsonb"`
	Embedding       *pgvector.Vector `gorm:"type:vector(1536)"`
	CreatedAt       time.Time        `gorm:"autoCreateTime"`
	UpdatedAt       time.Time        `gorm:"autoUpdateTime"`
}

func (GraphNode) TableName() string {
	return "graph_nodes"
}

type GraphRelationship struct {
	Id              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	KnowledgeBaseId uuid.UUID  `gorm:"type:uuid;not null;index"`
	SourceNodeId    uuid.UUID  `gorm:"type:uuid;not null;index"`
	TargetNodeId    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Description     string     `gorm:"type:text"`
	Weight          float64    `gorm:"default:0"`
	ChunkId         *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt       time.Time  `gorm:"autoCreateTime"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime"`
}

func (GraphRelationship) TableName() string {
	return "graph_relationships"
}

// FILE: internal/dto/graph_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type GraphNodeResponse struct {
	Id              uuid.UUID              `json:"id"`
	KnowledgeBaseId uuid.UUID              `json:"knowledge_base_id"`
	Name            string                 `json:"name"`
	Description     string                 `json:"description"`
	Meta            map[string]interface{} `json:"meta,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

type GraphRelationshipResponse struct {
	Id              uuid.UUID  `json:"id"`
	KnowledgeBaseId uuid.UUID  `json:"knowledge_base_id"`
	SourceNodeId    uuid.UUID  `json:"source_node_id"`
	TargetNodeId    uuid.UUID  `json:"target_node_id"`
	Description     string     `json:"description"`
	Weight          float64    `json:"weight"`
	ChunkId         *uuid.UUID `json:"chunk_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type SubgraphResponse struct {
	Nodes         []GraphNodeResponse         `json:"nodes"`
	Relationships []GraphRelationshipResponse `json:"relationships"`
}

type UpdateGraphNodeRequest struct {
	Name        string                 `json:"name" validate:"omitempty,min=1,max=512"`
	Description *string                `json:"description"`
	Meta        map[string]interface{} `json:"meta"`
}

type UpdateGraphRelationshipRequest struct {
	Description *string  `json:"description"`
	Weight      *float64 `json:"weight" validate:"omitempty,min=0"`
}

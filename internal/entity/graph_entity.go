package entity

import (
	"time"

	"github.com/google/uuid"
)

type GraphNode struct {
	Id              uuid.UUID
	KnowledgeBaseId uuid.UUID
	Name            string
	Description     string
	Meta            map[string]interface{}
	Embedding       []float32
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type GraphRelationship struct {
	Id              uuid.UUID
	KnowledgeBaseId uuid.UUID
	SourceNodeId    uuid.UUID
	TargetNodeId    uuid.UUID
	Description     string
	Weight          float64
	ChunkId         *uuid.UUID // provenance: which chunk this edge was extracted from
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Subgraph is what the graph explorer renders: a set of nodes plus the
// relationships connecting them.
type Subgraph struct {
	Nodes         []*GraphNode
	Relationships []*GraphRelationship
}

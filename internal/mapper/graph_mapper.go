package mapper

import (
	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type GraphMapper struct{}

func NewGraphMapper() *GraphMapper {
	return &GraphMapper{}
}

func (m *GraphMapper) NodeToEntity(n *model.GraphNode) *entity.GraphNode {
	if n == nil {
		return nil
	}

	var meta map[string]interface{}
	unmarshalJSON(n.Meta, &meta)

	var embedding []float32
	if n.Embedding != nil {
		embedding = n.Embedding.Slice()
	}

	return &entity.GraphNode{
		Id:              n.Id,
		KnowledgeBaseId: n.KnowledgeBaseId,
		Name:            n.Name,
		Description:     n.Description,
		Meta:            meta,
		Embedding:       embedding,
		CreatedAt:       n.CreatedAt,
		UpdatedAt:       n.UpdatedAt,
	}
}

func (m *GraphMapper) NodeToModel(n *entity.GraphNode) *model.GraphNode {
	if n == nil {
		return nil
	}

	var embedding *pgvector.Vector
	if len(n.Embedding) > 0 {
		v := pgvector.NewVector(n.Embedding)
		embedding = &v
	}

	return &model.GraphNode{
		Id:              n.Id,
		KnowledgeBaseId: n.KnowledgeBaseId,
		Name:            n.Name,
		Description:     n.Description,
		Meta:            marshalJSON(n.Meta),
		Embedding:       embedding,
		CreatedAt:       n.CreatedAt,
		UpdatedAt:       n.UpdatedAt,
	}
}

func (m *GraphMapper) NodesToEntities(nodes []*model.GraphNode) []*entity.GraphNode {
	entities := make([]*entity.GraphNode, len(nodes))
	for i, n := range nodes {
		entities[i] = m.NodeToEntity(n)
	}
	return entities
}

func (m *GraphMapper) RelationshipToEntity(r *model.GraphRelationship) *entity.GraphRelationship {
	if r == nil {
		return nil
	}
	return &entity.GraphRelationship{
		Id:              r.Id,
		KnowledgeBaseId: r.KnowledgeBaseId,
		SourceNodeId:    r.SourceNodeId,
		TargetNodeId:    r.TargetNodeId,
		Description:     r.Description,
		Weight:          r.Weight,
		ChunkId:         r.ChunkId,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func (m *GraphMapper) RelationshipToModel(r *entity.GraphRelationship) *model.GraphRelationship {
	if r == nil {
		return nil
	}
	return &model.GraphRelationship{
		Id:              r.Id,
		KnowledgeBaseId: r.KnowledgeBaseId,
		SourceNodeId:    r.SourceNodeId,
		TargetNodeId:    r.TargetNodeId,
		Description:     r.Description,
		Weight:          r.Weight,
		ChunkId:         r.ChunkId,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func (m *GraphMapper) RelationshipsToEntities(rels []*model.GraphRelationship) []*entity.GraphRelationship {
	entities := make([]*entity.GraphRelationship, len(rels))
	for i, r := range rels {
		entities[i] = m.RelationshipToEntity(r)
	}
	return entities
}

// FILE: internal/service/graph_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"rag-admin-be/internal/dto"
	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/pkg/apperrors"
	"rag-admin-be/internal/pkg/logger"
	"rag-admin-be/internal/repository/specification"
	"rag-admin-be/internal/repository/unitofwork"
	"rag-admin-be/pkg/admin/mapper"
	"rag-admin-be/pkg/provider"

	"github.com/google/uuid"
)

const (
	graphDefaultSeeds = 10
	graphMaxSeeds     = 50
	graphDefaultDepth = 1
	graphMaxDepth     = 3
	graphMaxNodes     = 200
)

type IGraphService interface {
	Explore(ctx context.Context, kbId uuid.UUID, query string, depth, limit int) (*dto.SubgraphResponse, error)
	GetNode(ctx context.Context, id uuid.UUID) (*dto.GraphNodeResponse, error)
	UpdateNode(ctx context.Context, id uuid.UUID, req *dto.UpdateGraphNodeRequest) (*dto.GraphNodeResponse, error)
	DeleteNode(ctx context.Context, id uuid.UUID) error
	GetRelationship(ctx context.Context, id uuid.UUID) (*dto.GraphRelationshipResponse, error)
	UpdateRelationship(ctx context.Context, id uuid.UUID, req *dto.UpdateGraphRelationshipRequest) (*dto.GraphRelationshipResponse, error)
}

type graphService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
	embedders  *embedderCache
}

func NewGraphService(uowFactory unitofwork.RepositoryFactory, logger logger.ILogger) IGraphService {
	return &graphService{
		uowFactory: uowFactory,
		logger:     logger,
		embedders:  newEmbedderCache(),
	}
}

// Explore returns the subgraph around the nodes matching the query. Seeds
// come from embedding similarity when the KB's embedding model is reachable,
// falling back to name search, or to the most recent nodes when the query is
// empty. Each depth step pulls in every relationship touching the frontier.
func (s *graphService) Explore(ctx context.Context, kbId uuid.UUID, query string, depth, limit int) (*dto.SubgraphResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	kb, err := uow.KnowledgeBaseRepository().FindOne(ctx, specification.ByID{ID: kbId})
	if err != nil {
		return nil, err
	}
	if kb == nil {
		return nil, apperrors.NotFound("knowledge base not found")
	}

	if limit <= 0 {
		limit = graphDefaultSeeds
	}
	if limit > graphMaxSeeds {
		limit = graphMaxSeeds
	}
	if depth < 0 {
		depth = graphDefaultDepth
	}
	if depth > graphMaxDepth {
		depth = graphMaxDepth
	}

	seeds, err := s.seedNodes(ctx, uow, kb, query, limit)
	if err != nil {
		return nil, err
	}

	nodes := make(map[uuid.UUID]*entity.GraphNode, len(seeds))
	order := make([]uuid.UUID, 0, len(seeds))
	for _, n := range seeds {
		if _, ok := nodes[n.Id]; !ok {
			nodes[n.Id] = n
			order = append(order, n.Id)
		}
	}

	rels := make(map[uuid.UUID]*entity.GraphRelationship)
	frontier := order

	for step := 0; step < depth && len(frontier) > 0 && len(nodes) < graphMaxNodes; step++ {
		edges, err := uow.GraphRepository().FindRelationships(ctx,
			specification.ByKnowledgeBaseID{KnowledgeBaseID: kbId},
			specification.TouchingNodes{NodeIDs: frontier},
		)
		if err != nil {
			return nil, err
		}

		discovered := make([]uuid.UUID, 0)
		for _, e := range edges {
			rels[e.Id] = e
			for _, endpoint := range []uuid.UUID{e.SourceNodeId, e.TargetNodeId} {
				if _, ok := nodes[endpoint]; !ok {
					discovered = append(discovered, endpoint)
					nodes[endpoint] = nil // reserve the slot, fetched below
				}
			}
		}

		if len(discovered) == 0 {
			break
		}
		fetched, err := uow.GraphRepository().FindNodes(ctx, specification.ByIDs{IDs: discovered})
		if err != nil {
			return nil, err
		}
		for _, n := range fetched {
			nodes[n.Id] = n
			order = append(order, n.Id)
		}

		frontier = discovered
	}

	sub := &entity.Subgraph{}
	for _, id := range order {
		if n := nodes[id]; n != nil {
			sub.Nodes = append(sub.Nodes, n)
			if len(sub.Nodes) >= graphMaxNodes {
				break
			}
		}
	}
	kept := make(map[uuid.UUID]bool, len(sub.Nodes))
	for _, n := range sub.Nodes {
		kept[n.Id] = true
	}
	for _, e := range rels {
		if kept[e.SourceNodeId] && kept[e.TargetNodeId] {
			sub.Relationships = append(sub.Relationships, e)
		}
	}

	return mapper.SubgraphToResponse(sub), nil
}

func (s *graphService) GetNode(ctx context.Context, id uuid.UUID) (*dto.GraphNodeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	node, err := uow.GraphRepository().FindOneNode(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, apperrors.NotFound("graph node not found")
	}
	return mapper.GraphNodeToResponse(node), nil
}

func (s *graphService) UpdateNode(ctx context.Context, id uuid.UUID, req *dto.UpdateGraphNodeRequest) (*dto.GraphNodeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	node, err := uow.GraphRepository().FindOneNode(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, apperrors.NotFound("graph node not found")
	}

	textChanged := false
	if req.Name != "" && req.Name != node.Name {
		node.Name = req.Name
		textChanged = true
	}
	if req.Description != nil && *req.Description != node.Description {
		node.Description = *req.Description
		textChanged = true
	}
	if req.Meta != nil {
		node.Meta = req.Meta
	}
	node.UpdatedAt = time.Now()

	// Keep the stored vector in sync with the text it was computed from.
	// An unreachable provider is not a reason to reject the edit.
	if textChanged {
		if vec, err := s.embedForKB(ctx, uow, node.KnowledgeBaseId, node.Name+"\n"+node.Description); err != nil {
			s.logger.Warn("GRAPH", "Node text changed but re-embedding failed", map[string]interface{}{
				"nodeId": node.Id.String(),
				"error":  err.Error(),
			})
		} else {
			node.Embedding = vec
		}
	}

	if err := uow.GraphRepository().UpdateNode(ctx, node); err != nil {
		return nil, err
	}
	return mapper.GraphNodeToResponse(node), nil
}

func (s *graphService) DeleteNode(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	node, err := uow.GraphRepository().FindOneNode(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if node == nil {
		return apperrors.NotFound("graph node not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.GraphRepository().DeleteRelationshipsTouching(ctx, id); err != nil {
		return err
	}
	if err := uow.GraphRepository().DeleteNode(ctx, id); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *graphService) GetRelationship(ctx context.Context, id uuid.UUID) (*dto.GraphRelationshipResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	rel, err := uow.GraphRepository().FindOneRelationship(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if rel == nil {
		return nil, apperrors.NotFound("graph relationship not found")
	}
	return mapper.GraphRelationshipToResponse(rel), nil
}

func (s *graphService) UpdateRelationship(ctx context.Context, id uuid.UUID, req *dto.UpdateGraphRelationshipRequest) (*dto.GraphRelationshipResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	rel, err := uow.GraphRepository().FindOneRelationship(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if rel == nil {
		return nil, apperrors.NotFound("graph relationship not found")
	}

	if req.Description != nil {
		rel.Description = *req.Description
	}
	if req.Weight != nil {
		rel.Weight = *req.Weight
	}
	rel.UpdatedAt = time.Now()

	if err := uow.GraphRepository().UpdateRelationship(ctx, rel); err != nil {
		return nil, err
	}
	return mapper.GraphRelationshipToResponse(rel), nil
}

func (s *graphService) seedNodes(ctx context.Context, uow unitofwork.UnitOfWork, kb *entity.KnowledgeBase, query string, limit int) ([]*entity.GraphNode, error) {
	byKB := specification.ByKnowledgeBaseID{KnowledgeBaseID: kb.Id}

	if query == "" {
		return uow.GraphRepository().FindNodes(ctx,
			byKB,
			specification.OrderBy{Field: "created_at", Desc: true},
			specification.Pagination{Limit: limit},
		)
	}

	if vec, err := s.embedForKB(ctx, uow, kb.Id, query); err == nil && len(vec) > 0 {
		nodes, err := uow.GraphRepository().SearchNodesByEmbedding(ctx, kb.Id, vec, limit)
		if err == nil && len(nodes) > 0 {
			return nodes, nil
		}
	} else if err != nil {
		s.logger.Warn("GRAPH", "Query embedding failed, falling back to name search", map[string]interface{}{
			"knowledgeBaseId": kb.Id.String(),
			"error":           err.Error(),
		})
	}

	return uow.GraphRepository().SearchNodesByName(ctx, kb.Id, query, limit)
}

// embedForKB embeds text with the KB's embedding model, normalized for the
// cosine-distance node index.
func (s *graphService) embedForKB(ctx context.Context, uow unitofwork.UnitOfWork, kbId uuid.UUID, text string) ([]float32, error) {
	kb, err := uow.KnowledgeBaseRepository().FindOne(ctx, specification.ByID{ID: kbId})
	if err != nil {
		return nil, err
	}
	if kb == nil {
		return nil, apperrors.NotFound("knowledge base not found")
	}

	model, err := uow.AIModelRepository().FindOne(ctx, specification.ByID{ID: kb.EmbeddingModelId})
	if err != nil {
		return nil, err
	}
	if model == nil {
		return nil, apperrors.NotFound("embedding model not found")
	}

	client, err := s.embedders.For(model)
	if err != nil {
		return nil, err
	}
	vec, err := client.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(vec) != entity.EmbeddingDimension {
		return nil, fmt.Errorf("embedding model %s returned %d dimensions, want %d", model.Name, len(vec), entity.EmbeddingDimension)
	}
	return provider.NormalizeVector(vec), nil
}

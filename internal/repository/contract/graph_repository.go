package contract

import (
	"context"

	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/repository/specification"

	"github.com/google/uuid"
)

type GraphRepository interface {
	CreateNode(ctx context.Context, node *entity.GraphNode) error
	UpdateNode(ctx context.Context, node *entity.GraphNode) error
	DeleteNode(ctx context.Context, id uuid.UUID) error
	FindOneNode(ctx context.Context, specs ...specification.Specification) (*entity.GraphNode, error)
	FindNodes(ctx context.Context, specs ...specification.Specification) ([]*entity.GraphNode, error)
	CountNodes(ctx context.Context, specs ...specification.Specification) (int64, error)

	CreateRelationship(ctx context.Context, rel *entity.GraphRelationship) error
	UpdateRelationship(ctx context.Context, rel *entity.GraphRelationship) error
	DeleteRelationship(ctx context.Context, id uuid.UUID) error
	FindOneRelationship(ctx context.Context, specs ...specification.Specification) (*entity.GraphRelationship, error)
	FindRelationships(ctx context.Context, specs ...specification.Specification) ([]*entity.GraphRelationship, error)
	CountRelationships(ctx context.Context, specs ...specification.Specification) (int64, error)

	// DeleteRelationshipsTouching removes every edge whose source or target
	// is the given node. Called before the node itself is deleted.
	DeleteRelationshipsTouching(ctx context.Context, nodeId uuid.UUID) error

	SearchNodesByName(ctx context.Context, kbId uuid.UUID, query string, limit int) ([]*entity.GraphNode, error)
	SearchNodesByEmbedding(ctx context.Context, kbId uuid.UUID, embedding []float32, limit int) ([]*entity.GraphNode, error)
}

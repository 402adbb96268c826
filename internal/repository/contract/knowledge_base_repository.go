package contract

import (
	"context"

	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/repository/specification"

	"github.com/google/uuid"
)

type KnowledgeBaseRepository interface {
	Create(ctx context.Context, kb *entity.KnowledgeBase) error
	Update(ctx context.Context, kb *entity.KnowledgeBase) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KnowledgeBase, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeBase, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// CountReferencingModel reports how many knowledge bases use the given
	// model as their LLM or embedding model. Used to guard model deletion.
	CountReferencingModel(ctx context.Context, modelId uuid.UUID) (int64, error)
}

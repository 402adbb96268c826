package contract

import (
	"context"

	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/repository/specification"

	"github.com/google/uuid"
)

type AIModelRepository interface {
	Create(ctx context.Context, m *entity.AIModel) error
	Update(ctx context.Context, m *entity.AIModel) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AIModel, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AIModel, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// ClearDefault unsets is_default on every model of the given kind.
	// Runs inside the same transaction as the subsequent default set.
	ClearDefault(ctx context.Context, kind entity.ModelKind) error
}

package contract

import (
	"context"

	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatEngineRepository interface {
	Create(ctx context.Context, engine *entity.ChatEngine) error
	Update(ctx context.Context, engine *entity.ChatEngine) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatEngine, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatEngine, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	ClearDefault(ctx context.Context) error
}

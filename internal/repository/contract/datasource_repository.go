package contract

import (
	"context"

	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DatasourceRepository interface {
	Create(ctx context.Context, ds *entity.Datasource) error
	Update(ctx context.Context, ds *entity.Datasource) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Datasource, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Datasource, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.IngestStatus, lastError *string) error
}

package contract

import (
	"context"
	"time"

	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DatabaseConnectionRepository interface {
	Create(ctx context.Context, conn *entity.DatabaseConnection) error
	Update(ctx context.Context, conn *entity.DatabaseConnection) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DatabaseConnection, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DatabaseConnection, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	UpdateLastTested(ctx context.Context, id uuid.UUID, at time.Time) error

	CreateQueryRecord(ctx context.Context, record *entity.SQLQueryRecord) error
	FindQueryRecords(ctx context.Context, specs ...specification.Specification) ([]*entity.SQLQueryRecord, error)
	CountQueryRecords(ctx context.Context, specs ...specification.Specification) (int64, error)
}

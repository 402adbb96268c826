package contract

import (
	"context"

	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/repository/specification"

	"github.com/google/uuid"
)

type EvaluationRepository interface {
	CreateDataset(ctx context.Context, ds *entity.EvaluationDataset) error
	UpdateDataset(ctx context.Context, ds *entity.EvaluationDataset) error
	DeleteDataset(ctx context.Context, id uuid.UUID) error
	FindOneDataset(ctx context.Context, specs ...specification.Specification) (*entity.EvaluationDataset, error)
	FindDatasets(ctx context.Context, specs ...specification.Specification) ([]*entity.EvaluationDataset, error)
	CountDatasets(ctx context.Context, specs ...specification.Specification) (int64, error)

	CreateItem(ctx context.Context, item *entity.EvaluationItem) error
	CreateItems(ctx context.Context, items []*entity.EvaluationItem) error
	UpdateItem(ctx context.Context, item *entity.EvaluationItem) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
	FindOneItem(ctx context.Context, specs ...specification.Specification) (*entity.EvaluationItem, error)
	FindItems(ctx context.Context, specs ...specification.Specification) ([]*entity.EvaluationItem, error)
	CountItems(ctx context.Context, specs ...specification.Specification) (int64, error)

	CreateTask(ctx context.Context, task *entity.EvaluationTask) error
	UpdateTask(ctx context.Context, task *entity.EvaluationTask) error
	FindOneTask(ctx context.Context, specs ...specification.Specification) (*entity.EvaluationTask, error)
	FindTasks(ctx context.Context, specs ...specification.Specification) ([]*entity.EvaluationTask, error)
	CountTasks(ctx context.Context, specs ...specification.Specification) (int64, error)

	CreateResult(ctx context.Context, result *entity.EvaluationResult) error
	FindResults(ctx context.Context, specs ...specification.Specification) ([]*entity.EvaluationResult, error)

	// CountTasksByDataset guards dataset deletion: datasets with running
	// tasks cannot be removed.
	CountTasksByDataset(ctx context.Context, datasetId uuid.UUID, statuses ...entity.EvaluationTaskStatus) (int64, error)
}

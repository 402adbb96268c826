// FILE: internal/dto/evaluation_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateEvaluationDatasetRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"max=4000"`
}

type UpdateEvaluationDatasetRequest struct {
	Name        string  `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=4000"`
}

type EvaluationDatasetResponse struct {
	Id          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ItemCount   int64     `json:"item_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateEvaluationItemRequest struct {
	Query     string                 `json:"query" validate:"required"`
	Reference string                 `json:"reference" validate:"required"`
	Extra     map[string]interface{} `json:"extra"`
}

type UpdateEvaluationItemRequest struct {
	Query     string                 `json:"query" validate:"omitempty"`
	Reference string                 `json:"reference" validate:"omitempty"`
	Extra     map[string]interface{} `json:"extra"`
}

type EvaluationItemResponse struct {
	Id        uuid.UUID              `json:"id"`
	DatasetId uuid.UUID              `json:"dataset_id"`
	Query     string                 `json:"query"`
	Reference string                 `json:"reference"`
	Extra     map[string]interface{} `json:"extra,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// UploadItemsResponse summarizes a CSV import. Skipped counts rows with a
// missing query or reference column.
type UploadItemsResponse struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

type CreateEvaluationTaskRequest struct {
	Name         string    `json:"name" validate:"required,min=1,max=255"`
	DatasetId    uuid.UUID `json:"dataset_id" validate:"required"`
	ChatEngineId uuid.UUID `json:"chat_engine_id" validate:"required"`
}

type EvaluationSummaryResponse struct {
	AvgKeywordRecall      float64 `json:"avg_keyword_recall"`
	AvgSemanticSimilarity float64 `json:"avg_semantic_similarity"`
}

type EvaluationTaskResponse struct {
	Id           uuid.UUID                  `json:"id"`
	Name         string                     `json:"name"`
	DatasetId    uuid.UUID                  `json:"dataset_id"`
	ChatEngineId uuid.UUID                  `json:"chat_engine_id"`
	Status       string                     `json:"status"`
	Total        int                        `json:"total"`
	Succeeded    int                        `json:"succeeded"`
	Failed       int                        `json:"failed"`
	Summary      *EvaluationSummaryResponse `json:"summary,omitempty"`
	StartedAt    *time.Time                 `json:"started_at,omitempty"`
	FinishedAt   *time.Time                 `json:"finished_at,omitempty"`
	CreatedAt    time.Time                  `json:"created_at"`
	UpdatedAt    time.Time                  `json:"updated_at"`
}

// TaskProgressResponse is served from the in-memory progress tracker while a
// task runs, falling back to the persisted row once it finishes.
type TaskProgressResponse struct {
	TaskId    uuid.UUID `json:"task_id"`
	Status    string    `json:"status"`
	Total     int       `json:"total"`
	Done      int       `json:"done"`
	Failed    int       `json:"failed"`
	UpdatedAt time.Time `json:"updated_at"`
}

type EvaluationResultResponse struct {
	Id                 uuid.UUID `json:"id"`
	TaskId             uuid.UUID `json:"task_id"`
	ItemId             uuid.UUID `json:"item_id"`
	Query              string    `json:"query"`
	Reference          string    `json:"reference"`
	Answer             string    `json:"answer"`
	KeywordRecall      float64   `json:"keyword_recall"`
	SemanticSimilarity float64   `json:"semantic_similarity"`
	Error              *string   `json:"error,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

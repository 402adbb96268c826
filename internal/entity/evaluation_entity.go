package entity

import (
	"time"

	"github.com/google/uuid"
)

type EvaluationTaskStatus string

const (
	EvaluationTaskStatusPending   EvaluationTaskStatus = "pending"
	EvaluationTaskStatusRunning   EvaluationTaskStatus = "running"
	EvaluationTaskStatusCompleted EvaluationTaskStatus = "completed"
	EvaluationTaskStatusFailed    EvaluationTaskStatus = "failed"
	EvaluationTaskStatusCancelled EvaluationTaskStatus = "cancelled"
)

type EvaluationDataset struct {
	Id          uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type EvaluationItem struct {
	Id        uuid.UUID
	DatasetId uuid.UUID
	Query     string
	Reference string // expected answer
	Extra     map[string]interface{}
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EvaluationSummary is the aggregate written onto the task when it finishes.
type EvaluationSummary struct {
	AvgKeywordRecall      float64 `json:"avg_keyword_recall"`
	AvgSemanticSimilarity float64 `json:"avg_semantic_similarity"`
}

type EvaluationTask struct {
	Id           uuid.UUID
	DatasetId    uuid.UUID
	ChatEngineId uuid.UUID
	Name         string
	Status       EvaluationTaskStatus
	Total        int
	Succeeded    int
	Failed       int
	Summary      *EvaluationSummary
	StartedAt    *time.Time
	FinishedAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type EvaluationResult struct {
	Id                 uuid.UUID
	TaskId             uuid.UUID
	ItemId             uuid.UUID
	Answer             string
	KeywordRecall      float64
	SemanticSimilarity float64
	Error              *string
	CreatedAt          time.Time
}

// TaskProgress is the live counter kept in memory while a task runs. The
// database row is only updated per item batch and on completion.
type TaskProgress struct {
	TaskId    uuid.UUID
	Status    EvaluationTaskStatus
	Total     int
	Done      int
	Failed    int
	UpdatedAt time.Time
}

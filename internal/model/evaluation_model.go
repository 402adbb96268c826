package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type EvaluationDataset struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (EvaluationDataset) TableName() string {
	return "evaluation_datasets"
}

type EvaluationItem struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DatasetId uuid.UUID      `gorm:"type:uuid;not null;index"`
	Query     string         `gorm:"type:text;not null"`
	Reference string         `gorm:"type:text"`
	Extra     datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (EvaluationItem) TableName() string {
	return "evaluation_items"
}

type EvaluationTask struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DatasetId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	ChatEngineId uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name         string         `gorm:"type:varchar(255);not null"`
	Status       string         `gorm:"type:varchar(50);not null;default:'pending';index"`
	Total        int            `gorm:"default:0"`
	Succeeded    int            `gorm:"default:0"`
	Failed       int            `gorm:"default:0"`
	Summary      datatypes.JSON `gorm:"type:jsonb"`
	StartedAt    *time.Time
	FinishedAt   *time.Time
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (EvaluationTask) TableName() string {
	return "evaluation_tasks"
}

type EvaluationResult struct {
	Id                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TaskId             uuid.UUID `gorm:"type:uuid;not null;index"`
	ItemId             uuid.UUID `gorm:"type:uuid;not null;index"`
	Answer             string    `gorm:"type:text"`
	KeywordRecall      float64   `gorm:"default:0"`
	SemanticSimilarity float64   `gorm:"default:0"`
	Error              *string   `gorm:"type:text"`
	CreatedAt          time.Time `gorm:"autoCreateTime"`
}

func (EvaluationResult) TableName() string {
	return "evaluation_results"
}

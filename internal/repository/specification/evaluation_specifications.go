package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByDatasetID struct {
	DatasetID uuid.UUID
}

func (s ByDatasetID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("dataset_id = ?", s.DatasetID)
}

type ByTaskID struct {
	TaskID uuid.UUID
}

func (s ByTaskID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("task_id = ?", s.TaskID)
}

type ByTaskStatus struct {
	Status string
}

func (s ByTaskStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

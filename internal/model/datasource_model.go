package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Datasource struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	KnowledgeBaseId uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name            string         `gorm:"type:varchar(255);not null"`
	Type            string         `gorm:"type:varchar(50);not null"`
	Config          datatypes.JSON `gorm:"type:jsonb;not null"`
	Status          string         `gorm:"type:varchar(50);not null;default:'pending'"`
	LastError       *string        `gorm:"type:text"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (Datasource) TableName() string {
	return "datasources"
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AIModel struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Kind        string         `gorm:"type:varchar(50);not null;index"`
	Name        string         `gorm:"type:varchar(255);not null"`
	Provider    string         `gorm:"type:varchar(50);not null"`
	Model       string         `gorm:"type:varchar(255);not null"`
	BaseURL     string         `gorm:"type:text"`
	Params      datatypes.JSON `gorm:"type:jsonb"`
	Credentials *string        `gorm:"type:text"`
	IsDefault   bool           `gorm:"default:false;index"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
}

func (AIModel) TableName() string {
	return "ai_models"
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SiteSetting struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string         `gorm:"type:varchar(255);uniqueIndex;not null"`
	Group        string         `gorm:"type:varchar(128);not null;index;column:setting_group"`
	DataType     string         `gorm:"type:varchar(50);not null"`
	Value        datatypes.JSON `gorm:"type:jsonb"`
	DefaultValue datatypes.JSON `gorm:"type:jsonb"`
	Description  string         `gorm:"type:text"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
}

func (SiteSetting) TableName() string {
	return "site_settings"
}

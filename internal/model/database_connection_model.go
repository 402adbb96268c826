package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DatabaseConnection struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Engine       string    `gorm:"type:varchar(50);not null"`
	Host         string    `gorm:"type:varchar(255);not null"`
	Port         int       `gorm:"not null"`
	Database     string    `gorm:"type:varchar(255);not null"`
	Username     string    `gorm:"type:varchar(255);not null"`
	Password     *string   `gorm:"type:text"`
	ReadOnly     bool      `gorm:"default:true"`
	Description  string    `gorm:"type:text"`
	LastTestedAt *time.Time
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (DatabaseConnection) TableName() string {
	return "database_connections"
}

type SQLQueryRecord struct {
	Id                   uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatId               uuid.UUID      `gorm:"type:uuid;not null;index"`
	ChatMessageId        *uuid.UUID     `gorm:"type:uuid;index"`
	DatabaseConnectionId uuid.UUID      `gorm:"type:uuid;not null;index"`
	Question             string         `gorm:"type:text;not null"`
	Query                string         `gorm:"type:text"`
	ResultRows           datatypes.JSON `gorm:"type:jsonb"`
	Error                *string        `gorm:"type:text"`
	DurationMs           int64          `gorm:"default:0"`
	CreatedAt            time.Time      `gorm:"autoCreateTime"`
}

func (SQLQueryRecord) TableName() string {
	return "sql_query_records"
}

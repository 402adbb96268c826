package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Chat struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title        string         `gorm:"type:varchar(512)"`
	ChatEngineId uuid.UUID      `gorm:"type:uuid;not null;index"`
	UserId       *uuid.UUID     `gorm:"type:uuid;index"`
	Origin       string         `gorm:"type:varchar(128)"`
	Visibility   string         `gorm:"type:varchar(50);not null;default:'private'"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Chat) TableName() string {
	return "chats"
}

type ChatMessage struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatId     uuid.UUID `gorm:"type:uuid;not null;index"`
	Ordinal    int       `gorm:"not null;default:0"`
	Role       string    `gorm:"type:varchar(50);not null"`
	Content    string    `gorm:"type:text"`
	TraceURL   *string   `gorm:"type:text"`
	FinishedAt *time.Time
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}

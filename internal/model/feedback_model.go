package model

import (
	"time"

	"github.com/google/uuid"
)

type Feedback struct {
	Id            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatId        uuid.UUID  `gorm:"type:uuid;not null;index"`
	ChatMessageId uuid.UUID  `gorm:"type:uuid;not null;index"`
	Type          string     `gorm:"type:varchar(50);not null"`
	Comment       string     `gorm:"type:text"`
	Origin        string     `gorm:"type:varchar(128)"`
	UserId        *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt     time.Time  `gorm:"autoCreateTime"`
}

func (Feedback) TableName() string {
	return "feedbacks"
}

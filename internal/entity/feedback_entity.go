package entity

import (
	"time"

	"github.com/google/uuid"
)

type FeedbackType string

const (
	FeedbackTypeLike    FeedbackType = "like"
	FeedbackTypeDislike FeedbackType = "dislike"
)

type Feedback struct {
	Id            uuid.UUID
	ChatId        uuid.UUID
	ChatMessageId uuid.UUID
	Type          FeedbackType
	Comment       string
	Origin        string
	UserId        *uuid.UUID
	CreatedAt     time.Time
}

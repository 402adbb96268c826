// FILE: internal/dto/feedback_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateFeedbackRequest struct {
	ChatId        uuid.UUID `json:"chat_id" validate:"required"`
	ChatMessageId uuid.UUID `json:"chat_message_id" validate:"required"`
	Type          string    `json:"type" validate:"required,oneof=like dislike"`
	Comment       string    `json:"comment" validate:"max=4000"`
	Origin        string    `json:"origin" validate:"max=255"`
}

type FeedbackResponse struct {
	Id            uuid.UUID `json:"id"`
	ChatId        uuid.UUID `json:"chat_id"`
	ChatMessageId uuid.UUID `json:"chat_message_id"`
	Type          string    `json:"type"`
	Comment       string    `json:"comment"`
	Origin        string    `json:"origin"`
	Question      string    `json:"question"`
	Answer        string    `json:"answer"`
	CreatedAt     time.Time `json:"created_at"`
}

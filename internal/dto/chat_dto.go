// FILE: internal/dto/chat_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type ChatListItemResponse struct {
	Id           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	ChatEngineId uuid.UUID  `json:"chat_engine_id"`
	UserId       *uuid.UUID `json:"user_id,omitempty"`
	Origin       string     `json:"origin"`
	Visibility   string     `json:"visibility"`
	MessageCount int64      `json:"message_count"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// CitationResponse is one knowledge://chunk/{id} link found in a message,
// resolved to its hover-card preview. Preview is null for dangling
// citations (the chunk has been deleted since the answer was written).
type CitationResponse struct {
	ChunkId uuid.UUID             `json:"chunk_id"`
	Anchor  string                `json:"anchor,omitempty"`
	Ordinal int                   `json:"ordinal"`
	Preview *ChunkPreviewResponse `json:"preview,omitempty"`
}

type ChatMessageResponse struct {
	Id         uuid.UUID          `json:"id"`
	Ordinal    int                `json:"ordinal"`
	Role       string             `json:"role"`
	Content    string             `json:"content"`
	Citations  []CitationResponse `json:"citations,omitempty"`
	TraceURL   *string            `json:"trace_url,omitempty"`
	FinishedAt *time.Time         `json:"finished_at,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
}

type ChatDetailResponse struct {
	ChatListItemResponse
	Messages []ChatMessageResponse `json:"messages"`
}

// SQLQueryRecordResponse is the NL2SQL audit trail of one chat.
type SQLQueryRecordResponse struct {
	Id                   uuid.UUID                `json:"id"`
	ChatMessageId        *uuid.UUID               `json:"chat_message_id,omitempty"`
	DatabaseConnectionId uuid.UUID                `json:"database_connection_id"`
	Question             string                   `json:"question"`
	Query                string                   `json:"query"`
	ResultRows           []map[string]interface{} `json:"result_rows,omitempty"`
	Error                *string                  `json:"error,omitempty"`
	DurationMs           int64                    `json:"duration_ms"`
	CreatedAt            time.Time                `json:"created_at"`
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

type MessageRole string
type ChatVisibility string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"

	ChatVisibilityPublic  ChatVisibility = "public"
	ChatVisibilityPrivate ChatVisibility = "private"
)

type Chat struct {
	Id           uuid.UUID
	Title        string
	ChatEngineId uuid.UUID
	UserId       *uuid.UUID // nil for anonymous web visitors
	Origin       string     // e.g. "web", "widget", "api"
	Visibility   ChatVisibility
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type ChatMessage struct {
	Id         uuid.UUID
	ChatId     uuid.UUID
	Ordinal    int
	Role       MessageRole
	Content    string // markdown, may contain knowledge://chunk/{id} links
	TraceURL   *string
	FinishedAt *time.Time
	CreatedAt  time.Time
}

// ChunkPreview is the resolved form of a knowledge://chunk/{id} citation:
// enough context to render a hover card without another round trip.
type ChunkPreview struct {
	ChunkId           uuid.UUID
	DocumentId        uuid.UUID
	DocumentName      string
	KnowledgeBaseId   uuid.UUID
	KnowledgeBaseName string
	SourceURI         string
	Text              string
}

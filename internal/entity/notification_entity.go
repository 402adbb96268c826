package entity

import (
	"time"

	"github.com/google/uuid"
)

// Notification types pushed to admin sessions.
const (
	NotificationTypeIngestCompleted = "ingest_completed"
	NotificationTypeIngestFailed    = "ingest_failed"
	NotificationTypeEvalCompleted   = "evaluation_completed"
	NotificationTypeEvalFailed      = "evaluation_failed"
	NotificationTypeUserInvited     = "user_invited"
)

type Notification struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Type      string
	Title     string
	Body      string
	Payload   map[string]interface{}
	Read      bool
	CreatedAt time.Time
}

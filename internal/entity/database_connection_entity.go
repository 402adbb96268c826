package entity

import (
	"time"

	"github.com/google/uuid"
)

type DatabaseEngine string

const (
	DatabaseEngineMySQL    DatabaseEngine = "mysql"
	DatabaseEnginePostgres DatabaseEngine = "postgres"
)

// DatabaseConnection is a registered external database that chat engines can
// answer questions against. Description doubles as the schema hint shown to
// the query generator.
type DatabaseConnection struct {
	Id           uuid.UUID
	Name         string
	Engine       DatabaseEngine
	Host         string
	Port         int
	Database     string
	Username     string
	Password     *string // write-only, masked on read
	ReadOnly     bool
	Description  string
	LastTestedAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SQLQueryRecord is the audit trail of one natural-language query executed
// against a registered connection during a chat.
type SQLQueryRecord struct {
	Id                   uuid.UUID
	ChatId               uuid.UUID
	ChatMessageId        *uuid.UUID
	DatabaseConnectionId uuid.UUID
	Question             string
	Query                string
	ResultRows           []map[string]interface{}
	Error                *string
	DurationMs           int64
	CreatedAt            time.Time
}

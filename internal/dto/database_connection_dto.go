// FILE: internal/dto/database_connection_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateDatabaseConnectionRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=255"`
	Engine      string  `json:"engine" validate:"required,oneof=mysql postgres"`
	Host        string  `json:"host" validate:"required"`
	Port        int     `json:"port" validate:"required,min=1,max=65535"`
	Database    string  `json:"database" validate:"required"`
	Username    string  `json:"username" validate:"required"`
	Password    *string `json:"password"`
	ReadOnly    bool    `json:"read_only"`
	Description string  `json:"description"`
}

// UpdateDatabaseConnectionRequest treats empty or masked password as
// "keep the stored secret".
type UpdateDatabaseConnectionRequest struct {
	Name        string  `json:"name" validate:"omitempty,min=1,max=255"`
	Engine      string  `json:"engine" validate:"omitempty,oneof=mysql postgres"`
	Host        string  `json:"host"`
	Port        int     `json:"port" validate:"omitempty,min=1,max=65535"`
	Database    string  `json:"database"`
	Username    string  `json:"username"`
	Password    *string `json:"password"`
	ReadOnly    *bool   `json:"read_only"`
	Description *string `json:"description"`
}

type DatabaseConnectionResponse struct {
	Id           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Engine       string     `json:"engine"`
	Host         string     `json:"host"`
	Port         int        `json:"port"`
	Database     string     `json:"database"`
	Username     string     `json:"username"`
	Password     *string    `json:"password,omitempty"` // masked
	ReadOnly     bool       `json:"read_only"`
	Description  string     `json:"description"`
	LastTestedAt *time.Time `json:"last_tested_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TestConnectionResponse reports a connectivity probe. For saved
// connections the probe also stamps last_tested_at.
type TestConnectionResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	LatencyMs int64  `json:"latency_ms"`
}

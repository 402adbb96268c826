// FILE: internal/dto/site_setting_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type SiteSettingResponse struct {
	Id           uuid.UUID   `json:"id"`
	Name         string      `json:"name"`
	Group        string      `json:"group"`
	DataType     string      `json:"data_type"`
	Value        interface{} `json:"value"`
	DefaultValue interface{} `json:"default_value"`
	Description  string      `json:"description"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// UpdateSettingRequest writes a setting value. When Path is set the write
// targets a nested field inside a json setting (dot separated, numeric
// segments index arrays); otherwise it replaces the whole value.
type UpdateSettingRequest struct {
	Value interface{} `json:"value"`
	Path  string      `json:"path" validate:"max=512"`
}

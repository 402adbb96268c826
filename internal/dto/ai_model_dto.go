// FILE: internal/dto/ai_model_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateModelRequest is shared by the llms, embedding_models and rerankers
// resources; the controller fixes the kind from the route.
type CreateModelRequest struct {
	Name        string                 `json:"name" validate:"required,min=1,max=255"`
	Provider    string                 `json:"provider" validate:"required,oneof=openai openai_like gemini ollama jina"`
	Model       string                 `json:"model" validate:"required,min=1,max=255"`
	BaseURL     string                 `json:"base_url" validate:"omitempty,url"`
	Params      map[string]interface{} `json:"params"`
	Credentials *string                `json:"credentials"`
	IsDefault   bool                   `json:"is_default"`
}

// UpdateModelRequest treats empty or masked credentials as "keep the
// stored secret".
type UpdateModelRequest struct {
	Name        string                 `json:"name" validate:"omitempty,min=1,max=255"`
	Provider    string                 `json:"provider" validate:"omitempty,oneof=openai openai_like gemini ollama jina"`
	Model       string                 `json:"model" validate:"omitempty,min=1,max=255"`
	BaseURL     *string                `json:"base_url"`
	Params      map[string]interface{} `json:"params"`
	Credentials *string                `json:"credentials"`
}

type ModelResponse struct {
	Id          uuid.UUID              `json:"id"`
	Kind        string                 `json:"kind"`
	Name        string                 `json:"name"`
	Provider    string                 `json:"provider"`
	Model       string                 `json:"model"`
	BaseURL     string                 `json:"base_url,omitempty"`
	Params      map[string]interface{} `json:"params,omitempty"`
	Credentials *string                `json:"credentials,omitempty"` // masked
	IsDefault   bool                   `json:"is_default"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// TestModelResponse reports a connectivity probe on an unsaved config.
type TestModelResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	LatencyMs int64  `json:"latency_ms"`
}

// FILE: internal/dto/queue_dto.go
package dto

import "github.com/google/uuid"

// Queue message payloads. These cross the watermill topics, so keep them
// small: consumers reload the row by id and never trust stale fields.

type IngestDatasourceMessage struct {
	DatasourceId uuid.UUID `json:"datasource_id"`
}

type RunEvaluationMessage struct {
	TaskId uuid.UUID `json:"task_id"`
}

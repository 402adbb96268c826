package dto

import (
	"testing"

	"rag-admin-be/internal/pkg/apperrors"
	"rag-admin-be/internal/pkg/serverutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name      string
		req       interface{}
		wantField string // empty means the request is valid
	}{
		{
			name: "valid model create",
			req: CreateModelRequest{
				Name:     "gpt-4o",
				Provider: "openai",
				Model:    "gpt-4o",
			},
		},
		{
			name:      "model create without name",
			req:       CreateModelRequest{Provider: "openai", Model: "gpt-4o"},
			wantField: "Name",
		},
		{
			name:      "model create with unknown provider",
			req:       CreateModelRequest{Name: "m", Provider: "azure", Model: "m"},
			wantField: "Provider",
		},
		{
			name:      "model create with invalid base url",
			req:       CreateModelRequest{Name: "m", Provider: "ollama", Model: "m", BaseURL: "not a url"},
			wantField: "BaseURL",
		},
		{
			name: "model create without base url is fine",
			req:  CreateModelRequest{Name: "m", Provider: "ollama", Model: "m"},
		},
		{
			name:      "login with bad email",
			req:       LoginRequest{Email: "nope", Password: "secret"},
			wantField: "Email",
		},
		{
			name:      "login without password",
			req:       LoginRequest{Email: "admin@example.com"},
			wantField: "Password",
		},
		{
			name: "valid connection create",
			req: CreateDatabaseConnectionRequest{
				Name:     "warehouse",
				Engine:   "postgres",
				Host:     "db.internal",
				Port:     5432,
				Database: "warehouse",
				Username: "reader",
			},
		},
		{
			name: "connection create with unsupported engine",
			req: CreateDatabaseConnectionRequest{
				Name: "w", Engine: "sqlite", Host: "h", Port: 1, Database: "d", Username: "u",
			},
			wantField: "Engine",
		},
		{
			name: "connection create with out of range port",
			req: CreateDatabaseConnectionRequest{
				Name: "w", Engine: "mysql", Host: "h", Port: 70000, Database: "d", Username: "u",
			},
			wantField: "Port",
		},
		{
			name:      "datasource create with unknown source type",
			req:       CreateDatasourceRequest{Name: "docs", SourceType: "rss"},
			wantField: "SourceType",
		},
		{
			name:      "datasource create with malformed url",
			req:       CreateDatasourceRequest{Name: "docs", SourceType: "url", URL: "::::"},
			wantField: "URL",
		},
		{
			name: "file datasource needs no url",
			req:  CreateDatasourceRequest{Name: "docs", SourceType: "file"},
		},
		{
			name:      "feedback with unknown type",
			req:       CreateFeedbackRequest{ChatId: uuid.New(), ChatMessageId: uuid.New(), Type: "love"},
			wantField: "Type",
		},
		{
			name:      "feedback without chat id",
			req:       CreateFeedbackRequest{ChatMessageId: uuid.New(), Type: "like"},
			wantField: "ChatId",
		},
		{
			name:      "evaluation task without dataset",
			req:       CreateEvaluationTaskRequest{Name: "run", ChatEngineId: uuid.New()},
			wantField: "DatasetId",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := serverutils.ValidateRequest(tt.req)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.wantField)
		})
	}
}

// FILE: internal/service/evaluation_csv_test.go
package service

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEvaluationCSV(t *testing.T) {
	datasetId := uuid.New()

	tests := []struct {
		name         string
		csv          string
		wantImported int
		wantSkipped  int
		wantErr      bool
	}{
		{
			name:         "query and reference header",
			csv:          "query,reference\nWhat is RAG?,Retrieval augmented generation\nWhat is NL2SQL?,Natural language to SQL",
			wantImported: 2,
		},
		{
			name:         "question and answer aliases",
			csv:          "question,answer\nWhat is a chunk?,A slice of a document",
			wantImported: 1,
		},
		{
			name:         "reference_answer alias",
			csv:          "Query,reference_answer\nq1,a1",
			wantImported: 1,
		},
		{
			name:    "missing reference column",
			csv:     "query,comment\nq1,nice",
			wantErr: true,
		},
		{
			name:    "empty file",
			csv:     "",
			wantErr: true,
		},
		{
			name:         "rows with empty fields are skipped",
			csv:          "query,reference\nq1,a1\n,a2\nq3,",
			wantImported: 1,
			wantSkipped:  2,
		},
		{
			name:         "short rows are skipped not fatal",
			csv:          "query,reference\nq1\nq2,a2",
			wantImported: 1,
			wantSkipped:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, skipped, err := parseEvaluationCSV(strings.NewReader(tt.csv), datasetId)

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, items, tt.wantImported)
			assert.Equal(t, tt.wantSkipped, skipped)

			for _, item := range items {
				assert.Equal(t, datasetId, item.DatasetId)
				assert.NotEmpty(t, item.Query)
				assert.NotEmpty(t, item.Reference)
			}
		})
	}
}

func TestParseEvaluationCSVExtraColumns(t *testing.T) {
	csv := "query,reference,Category,weight\nq1,a1,geography,0.5\nq2,a2,,"

	items, skipped, err := parseEvaluationCSV(strings.NewReader(csv), uuid.New())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 0, skipped)

	// Extra columns keyed by lowercased header, empty cells dropped.
	assert.Equal(t, "geography", items[0].Extra["category"])
	assert.Equal(t, "0.5", items[0].Extra["weight"])
	assert.Nil(t, items[1].Extra)
}

func TestParseEvaluationCSVDuplicateHeaderUsesFirst(t *testing.T) {
	csv := "query,reference,query\nreal question,answer,shadowed"

	items, _, err := parseEvaluationCSV(strings.NewReader(csv), uuid.New())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "real question", items[0].Query)

	// The duplicate header column is still captured as extra data.
	assert.Equal(t, "shadowed", items[0].Extra["query"])
}

package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIndexMethods(t *testing.T) {
	tests := []struct {
		name    string
		methods []IndexMethod
		want    []IndexMethod
	}{
		{
			name:    "empty defaults to vector",
			methods: nil,
			want:    []IndexMethod{IndexMethodVector},
		},
		{
			name:    "vector only",
			methods: []IndexMethod{IndexMethodVector},
			want:    []IndexMethod{IndexMethodVector},
		},
		{
			name:    "knowledge graph pulls in vector",
			methods: []IndexMethod{IndexMethodKnowledgeGraph},
			want:    []IndexMethod{IndexMethodVector, IndexMethodKnowledgeGraph},
		},
		{
			name:    "duplicates collapse",
			methods: []IndexMethod{IndexMethodVector, IndexMethodVector, IndexMethodKnowledgeGraph, IndexMethodKnowledgeGraph},
			want:    []IndexMethod{IndexMethodVector, IndexMethodKnowledgeGraph},
		},
		{
			name:    "order stays stable when vector already first",
			methods: []IndexMethod{IndexMethodVector, IndexMethodKnowledgeGraph},
			want:    []IndexMethod{IndexMethodVector, IndexMethodKnowledgeGraph},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeIndexMethods(tt.methods)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHasIndexMethod(t *testing.T) {
	methods := []IndexMethod{IndexMethodVector}

	assert.True(t, HasIndexMethod(methods, IndexMethodVector))
	assert.False(t, HasIndexMethod(methods, IndexMethodKnowledgeGraph))
	assert.False(t, HasIndexMethod(nil, IndexMethodVector))
}

func TestModelKindValid(t *testing.T) {
	assert.True(t, ModelKindLLM.Valid())
	assert.True(t, ModelKindEmbedding.Valid())
	assert.True(t, ModelKindReranker.Valid())
	assert.False(t, ModelKind("chat").Valid())
	assert.False(t, ModelKind("").Valid())
}

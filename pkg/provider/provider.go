// FILE: pkg/provider/provider.go
package provider

import (
	"context"
	"math"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// LLMClient is the contract for any chat-completion backend.
type LLMClient interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string) (string, error)

	// ListModels asks the provider which models the credentials can reach.
	// Used as the connectivity probe for the "test model" operations.
	ListModels(ctx context.Context) ([]string, error)
}

// EmbeddingClient turns text into a vector.
type EmbeddingClient interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	ModelName() string
}

// RerankResult scores one candidate document against the query.
type RerankResult struct {
	Index int     `json:"index"`
	Score float64 `json:"relevance_score"`
}

// RerankerClient reorders candidate documents by relevance to a query.
type RerankerClient interface {
	Rerank(ctx context.Context, query string, documents []string, topN int) ([]RerankResult, error)
}

// NormalizeVector normalizes a vector to unit length (magnitude = 1).
// Cosine distance in pgvector expects normalized vectors.
func NormalizeVector(vec []float32) []float32 {
	var magnitude float64
	for _, v := range vec {
		magnitude += float64(v) * float64(v)
	}
	magnitude = math.Sqrt(magnitude)

	// Avoid division by zero
	if magnitude == 0 {
		return vec
	}

	normalized := make([]float32, len(vec))
	for i, v := range vec {
		normalized[i] = float32(float64(v) / magnitude)
	}
	return normalized
}

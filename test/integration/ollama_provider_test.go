// FILE: test/integration/ollama_provider_test.go
// Exercises the Ollama provider client against a locally running daemon.
// Set OLLAMA_BASE_URL / OLLAMA_TEST_MODEL to override the defaults.
package integration

import (
	"context"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"rag-admin-be/pkg/provider"
)

func ollamaBaseURL() string {
	if v := os.Getenv("OLLAMA_BASE_URL"); v != "" {
		return v
	}
	return "http://localhost:11434"
}

func ollamaTestModel() string {
	if v := os.Getenv("OLLAMA_TEST_MODEL"); v != "" {
		return v
	}
	return "gemma:2b"
}

// requireOllama skips the test when no daemon answers at the base URL, so
// the suite stays green on machines without a local model server.
func requireOllama(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", ollamaBaseURL(), nil)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}

	client := &http.Client{Timeout: 5 * time.Second}
	res, err := client.Do(req)
	if err != nil {
		t.Skipf("Skipping: Ollama not running at %s: %v", ollamaBaseURL(), err)
	}
	res.Body.Close()
}

func TestOllamaProviderListModels(t *testing.T) {
	requireOllama(t)

	client := provider.NewOllamaClient(ollamaBaseURL(), ollamaTestModel())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	models, err := client.ListModels(ctx)
	if err != nil {
		t.Fatalf("ListModels failed: %v", err)
	}

	t.Logf("Available models: %v", models)
	if len(models) == 0 {
		t.Log("Warning: daemon is up but has no models pulled")
	}
}

func TestOllamaProviderChat(t *testing.T) {
	requireOllama(t)

	client := provider.NewOllamaClient(ollamaBaseURL(), ollamaTestModel())

	// First request can be slow while the daemon loads the model.
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	response, err := client.Chat(ctx, []provider.Message{
		{Role: "user", Content: "Say 'provider works' in one short sentence."},
	})
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}

	t.Logf("Response: %s", response)
	if response == "" {
		t.Error("Response should not be empty")
	}
}

func TestOllamaProviderMultiTurnChat(t *testing.T) {
	requireOllama(t)

	client := provider.NewOllamaClient(ollamaBaseURL(), ollamaTestModel())

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	response, err := client.Chat(ctx, []provider.Message{
		{Role: "user", Content: "My name is John"},
		{Role: "assistant", Content: "Nice to meet you, John!"},
		{Role: "user", Content: "What is my name?"},
	})
	if err != nil {
		t.Fatalf("Multi-turn chat failed: %v", err)
	}

	t.Logf("Response: %s", response)
	if !strings.Contains(response, "John") {
		t.Logf("Warning: response may not retain context: %s", response)
	}
}

func TestOllamaProviderEmbedding(t *testing.T) {
	requireOllama(t)

	model := os.Getenv("OLLAMA_TEST_EMBED_MODEL")
	if model == "" {
		model = "nomic-embed-text"
	}
	client := provider.NewOllamaClient(ollamaBaseURL(), model)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	vec, err := client.Embed(ctx, "The quick brown fox jumps over the lazy dog")
	if err != nil {
		t.Skipf("Skipping: embedding model %q not available: %v", model, err)
	}

	t.Logf("Embedding dimensions: %d", len(vec))
	if len(vec) == 0 {
		t.Fatal("Embedding should not be empty")
	}

	// Stored vectors are normalized before they hit pgvector.
	normalized := provider.NormalizeVector(vec)
	var magnitude float64
	for _, v := range normalized {
		magnitude += float64(v) * float64(v)
	}
	if magnitude < 0.99 || magnitude > 1.01 {
		t.Errorf("Normalized vector magnitude should be ~1, got %f", magnitude)
	}
}

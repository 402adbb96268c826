package provider

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rag-admin-be/internal/entity"
)

func TestOpenAIClientListModels(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/models", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]string{{"id": "gpt-4o-mini"}, {"id": "gpt-4o"}},
		})
	}))
	defer server.Close()

	client := NewOpenAIClient(server.URL+"/v1", "gpt-4o-mini", "sk-test")
	models, err := client.ListModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"gpt-4o-mini", "gpt-4o"}, models)
	assert.Equal(t, "Bearer sk-test", gotAuth)
}

func TestOpenAIClientEmbedNormalizes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/embeddings", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{"index": 0, "embedding": []float32{3, 4}},
			},
		})
	}))
	defer server.Close()

	client := NewOpenAIClient(server.URL+"/v1", "text-embedding-3-small", "")
	vec, err := client.Embed(context.Background(), "hello")
	require.NoError(t, err)
	require.Len(t, vec, 2)

	var magnitude float64
	for _, v := range vec {
		magnitude += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(magnitude), 1e-6)
}

func TestOpenAIClientChat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)

		var req openAIChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "pong"}},
			},
		})
	}))
	defer server.Close()

	client := NewOpenAIClient(server.URL+"/v1", "gpt-4o-mini", "")
	answer, err := client.Chat(context.Background(), []Message{
		{Role: "system", Content: "You are a ping service."},
		{Role: "user", Content: "ping"},
	})
	require.NoError(t, err)
	assert.Equal(t, "pong", answer)
}

func TestOpenAIClientSurfacesHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"bad key"}}`))
	}))
	defer server.Close()

	client := NewOpenAIClient(server.URL+"/v1", "gpt-4o-mini", "wrong")
	_, err := client.ListModels(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestOllamaClientListModels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tags", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"models": []map[string]string{{"name": "llama3:8b"}},
		})
	}))
	defer server.Close()

	client := NewOllamaClient(server.URL, "llama3:8b")
	models, err := client.ListModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"llama3:8b"}, models)
}

func TestOllamaClientEmbed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/embeddings", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"embedding": []float64{1, 0, 0},
		})
	}))
	defer server.Close()

	client := NewOllamaClient(server.URL, "nomic-embed-text")
	vec, err := client.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0, 0}, vec)
}

func TestFactoryDispatch(t *testing.T) {
	key := "sk-test"

	llm, err := NewLLMClient(&entity.AIModel{
		Kind:        entity.ModelKindLLM,
		Provider:    entity.ModelProviderOpenAI,
		Model:       "gpt-4o-mini",
		Credentials: &key,
	})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, llm)

	emb, err := NewEmbeddingClient(&entity.AIModel{
		Kind:     entity.ModelKindEmbedding,
		Provider: entity.ModelProviderOllama,
		Model:    "nomic-embed-text",
	})
	require.NoError(t, err)
	assert.IsType(t, &OllamaClient{}, emb)

	_, err = NewLLMClient(&entity.AIModel{Provider: "unknown"})
	assert.Error(t, err)

	// Ollama has no rerank endpoint.
	_, err = NewRerankerClient(&entity.AIModel{Provider: entity.ModelProviderOllama})
	assert.Error(t, err)
}

func TestFactoryAppliesParams(t *testing.T) {
	llm, err := NewLLMClient(&entity.AIModel{
		Kind:     entity.ModelKindLLM,
		Provider: entity.ModelProviderOpenAI,
		Model:    "gpt-4o-mini",
		Params:   map[string]interface{}{"temperature": 0.2, "max_tokens": float64(512)},
	})
	require.NoError(t, err)

	client := llm.(*OpenAIClient)
	assert.Equal(t, 0.2, client.Temperature)
	assert.Equal(t, 512, client.MaxTokens)
}

type countingEmbedder struct {
	calls int
	vec   []float32
}

func (c *countingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	c.calls++
	return c.vec, nil
}

func (c *countingEmbedder) ModelName() string { return "counting" }

func TestWrapLRUCache(t *testing.T) {
	inner := &countingEmbedder{vec: []float32{0.1, 0.2}}
	cached := WrapLRUCache(inner, 8, time.Minute)

	first, err := cached.Embed(context.Background(), "same text")
	require.NoError(t, err)
	second, err := cached.Embed(context.Background(), "same text")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls, "second call must be served from cache")

	_, err = cached.Embed(context.Background(), "different text")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)

	// Cached slices must not alias the stored value.
	first[0] = 99
	third, err := cached.Embed(context.Background(), "same text")
	require.NoError(t, err)
	assert.Equal(t, float32(0.1), third[0])
}

func TestWrapLRUCacheDisabled(t *testing.T) {
	inner := &countingEmbedder{vec: []float32{1}}
	assert.Equal(t, EmbeddingClient(inner), WrapLRUCache(inner, 0, time.Minute))
	assert.Equal(t, EmbeddingClient(inner), WrapLRUCache(inner, 8, 0))
	assert.Nil(t, WrapLRUCache(nil, 8, time.Minute))
}

func TestProbeEmbedding(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{{"index": 0, "embedding": []float32{1, 0}}},
		})
	}))
	defer server.Close()

	err := Probe(context.Background(), &entity.AIModel{
		Kind:     entity.ModelKindEmbedding,
		Provider: entity.ModelProviderOpenAILike,
		Model:    "text-embedding-3-small",
		BaseURL:  server.URL + "/v1",
	})
	assert.NoError(t, err)
}

func TestProbeUnknownKind(t *testing.T) {
	err := Probe(context.Background(), &entity.AIModel{Kind: "weird"})
	assert.Error(t, err)
}

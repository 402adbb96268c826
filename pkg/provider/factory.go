// FILE: pkg/provider/factory.go
package provider

import (
	"context"
	"fmt"

	"rag-admin-be/internal/entity"
)

// Default base URLs for providers that expose an OpenAI-compatible surface.
const (
	geminiCompatBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"
	jinaBaseURL         = "https://api.jina.ai/v1"
)

// NewLLMClient builds a chat client for a configured model.
func NewLLMClient(m *entity.AIModel) (LLMClient, error) {
	switch m.Provider {
	case entity.ModelProviderOpenAI, entity.ModelProviderOpenAILike:
		return tuneOpenAI(NewOpenAIClient(m.BaseURL, m.Model, credential(m)), m), nil
	case entity.ModelProviderGemini:
		baseURL := m.BaseURL
		if baseURL == "" {
			baseURL = geminiCompatBaseURL
		}
		return tuneOpenAI(NewOpenAIClient(baseURL, m.Model, credential(m)), m), nil
	case entity.ModelProviderOllama:
		return tuneOllama(NewOllamaClient(m.BaseURL, m.Model), m), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", m.Provider)
	}
}

// NewEmbeddingClient builds an embedding client for a configured model.
func NewEmbeddingClient(m *entity.AIModel) (EmbeddingClient, error) {
	switch m.Provider {
	case entity.ModelProviderOpenAI, entity.ModelProviderOpenAILike:
		return NewOpenAIClient(m.BaseURL, m.Model, credential(m)), nil
	case entity.ModelProviderGemini:
		baseURL := m.BaseURL
		if baseURL == "" {
			baseURL = geminiCompatBaseURL
		}
		return NewOpenAIClient(baseURL, m.Model, credential(m)), nil
	case entity.ModelProviderJina:
		baseURL := m.BaseURL
		if baseURL == "" {
			baseURL = jinaBaseURL
		}
		return NewOpenAIClient(baseURL, m.Model, credential(m)), nil
	case entity.ModelProviderOllama:
		return NewOllamaClient(m.BaseURL, m.Model), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", m.Provider)
	}
}

// NewRerankerClient builds a reranker client for a configured model.
// Only OpenAI-shaped /v1/rerank endpoints (Jina, Cohere-compatible
// gateways) are supported.
func NewRerankerClient(m *entity.AIModel) (RerankerClient, error) {
	switch m.Provider {
	case entity.ModelProviderJina:
		baseURL := m.BaseURL
		if baseURL == "" {
			baseURL = jinaBaseURL
		}
		return NewOpenAIClient(baseURL, m.Model, credential(m)), nil
	case entity.ModelProviderOpenAI, entity.ModelProviderOpenAILike:
		return NewOpenAIClient(m.BaseURL, m.Model, credential(m)), nil
	default:
		return nil, fmt.Errorf("unsupported reranker provider: %s", m.Provider)
	}
}

// Probe performs the cheapest call that proves the configuration works:
// list models for LLMs, embed a short string for embedding models, rerank
// two stub documents for rerankers. Used by the "test model" endpoints
// before anything is saved.
func Probe(ctx context.Context, m *entity.AIModel) error {
	switch m.Kind {
	case entity.ModelKindLLM:
		client, err := NewLLMClient(m)
		if err != nil {
			return err
		}
		_, err = client.ListModels(ctx)
		return err
	case entity.ModelKindEmbedding:
		client, err := NewEmbeddingClient(m)
		if err != nil {
			return err
		}
		vec, err := client.Embed(ctx, "connectivity probe")
		if err != nil {
			return err
		}
		if len(vec) == 0 {
			return fmt.Errorf("provider returned an empty embedding")
		}
		return nil
	case entity.ModelKindReranker:
		client, err := NewRerankerClient(m)
		if err != nil {
			return err
		}
		_, err = client.Rerank(ctx, "probe", []string{"first document", "second document"}, 1)
		return err
	default:
		return fmt.Errorf("unsupported model kind: %s", m.Kind)
	}
}

func credential(m *entity.AIModel) string {
	if m.Credentials == nil {
		return ""
	}
	return *m.Credentials
}

func tuneOpenAI(c *OpenAIClient, m *entity.AIModel) *OpenAIClient {
	if t, ok := paramFloat(m.Params, "temperature"); ok {
		c.Temperature = t
	}
	if n, ok := paramInt(m.Params, "max_tokens"); ok {
		c.MaxTokens = n
	}
	return c
}

func tuneOllama(c *OllamaClient, m *entity.AIModel) *OllamaClient {
	if t, ok := paramFloat(m.Params, "temperature"); ok {
		c.Temperature = t
	}
	if n, ok := paramInt(m.Params, "max_tokens"); ok {
		c.MaxTokens = n
	}
	return c
}

func paramFloat(params map[string]interface{}, key string) (float64, bool) {
	if params == nil {
		return 0, false
	}
	switch v := params[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

func paramInt(params map[string]interface{}, key string) (int, bool) {
	if params == nil {
		return 0, false
	}
	switch v := params[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}

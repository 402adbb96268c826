// FILE: pkg/provider/openai.go
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// OpenAIClient speaks the OpenAI wire format: /v1/models, /v1/chat/completions,
// /v1/embeddings and /v1/rerank. Any provider exposing a compatible surface
// (OpenAI itself, Gemini's compatibility endpoint, Jina, vLLM, LocalAI) is
// served by this one client with a different BaseURL.
type OpenAIClient struct {
	BaseURL     string
	ModelId     string
	ApiKey      string
	Temperature float64
	MaxTokens   int
	Client      *http.Client
}

var _ LLMClient = &OpenAIClient{}
var _ EmbeddingClient = &OpenAIClient{}
var _ RerankerClient = &OpenAIClient{}

func NewOpenAIClient(baseURL, modelId, apiKey string) *OpenAIClient {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &OpenAIClient{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		ModelId:     modelId,
		ApiKey:      apiKey,
		Temperature: 0.7,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type openAIChatRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature,omitempty"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
	Stream      bool            `json:"stream"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message openAIMessage `json:"message"`
	} `json:"choices"`
	Error *openAIError `json:"error,omitempty"`
}

type openAIEmbeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type openAIEmbeddingResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
	Error *openAIError `json:"error,omitempty"`
}

type openAIModelsResponse struct {
	Data []struct {
		Id string `json:"id"`
	} `json:"data"`
	Error *openAIError `json:"error,omitempty"`
}

type openAIRerankRequest struct {
	Model     string   `json:"model"`
	Query     string   `json:"query"`
	Documents []string `json:"documents"`
	TopN      int      `json:"top_n,omitempty"`
}

type openAIRerankResponse struct {
	Results []RerankResult `json:"results"`
	Error   *openAIError   `json:"error,omitempty"`
}

type openAIError struct {
	Message string `json:"message"`
}

// --- Interface Implementation ---

func (c *OpenAIClient) Chat(ctx context.Context, history []Message) (string, error) {
	messages := make([]openAIMessage, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == "model" {
			role = "assistant"
		}
		messages[i] = openAIMessage{Role: role, Content: msg.Content}
	}

	reqPayload := openAIChatRequest{
		Model:       c.ModelId,
		Messages:    messages,
		Temperature: c.Temperature,
		MaxTokens:   c.MaxTokens,
		Stream:      false,
	}

	var chatResp openAIChatResponse
	if err := c.post(ctx, "/chat/completions", reqPayload, &chatResp); err != nil {
		return "", err
	}
	if chatResp.Error != nil {
		return "", fmt.Errorf("provider error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("provider returned no choices")
	}
	return chatResp.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	return c.Chat(ctx, []Message{{Role: "user", Content: prompt}})
}

func (c *OpenAIClient) Embed(ctx context.Context, text string) ([]float32, error) {
	reqPayload := openAIEmbeddingRequest{
		Model: c.ModelId,
		Input: []string{text},
	}

	var embResp openAIEmbeddingResponse
	if err := c.post(ctx, "/embeddings", reqPayload, &embResp); err != nil {
		return nil, err
	}
	if embResp.Error != nil {
		return nil, fmt.Errorf("provider error: %s", embResp.Error.Message)
	}
	if len(embResp.Data) == 0 {
		return nil, fmt.Errorf("provider returned no embedding")
	}
	return NormalizeVector(embResp.Data[0].Embedding), nil
}

func (c *OpenAIClient) ModelName() string {
	return c.ModelId
}

func (c *OpenAIClient) ListModels(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.BaseURL+"/models", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.authorize(req)

	bodyBytes, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var modelsResp openAIModelsResponse
	if err := json.Unmarshal(bodyBytes, &modelsResp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if modelsResp.Error != nil {
		return nil, fmt.Errorf("provider error: %s", modelsResp.Error.Message)
	}

	ids := make([]string, 0, len(modelsResp.Data))
	for _, m := range modelsResp.Data {
		ids = append(ids, m.Id)
	}
	return ids, nil
}

func (c *OpenAIClient) Rerank(ctx context.Context, query string, documents []string, topN int) ([]RerankResult, error) {
	reqPayload := openAIRerankRequest{
		Model:     c.ModelId,
		Query:     query,
		Documents: documents,
		TopN:      topN,
	}

	var rerankResp openAIRerankResponse
	if err := c.post(ctx, "/rerank", reqPayload, &rerankResp); err != nil {
		return nil, err
	}
	if rerankResp.Error != nil {
		return nil, fmt.Errorf("provider error: %s", rerankResp.Error.Message)
	}
	return rerankResp.Results, nil
}

// --- HTTP plumbing ---

func (c *OpenAIClient) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+path, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	bodyBytes, err := c.do(req)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

func (c *OpenAIClient) authorize(req *http.Request) {
	if c.ApiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.ApiKey)
	}
}

func (c *OpenAIClient) do(req *http.Request) ([]byte, error) {
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}
	return bodyBytes, nil
}

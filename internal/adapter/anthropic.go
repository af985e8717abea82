package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const anthropicVersion = "2023-06-01"

// AnthropicGenerator calls the Anthropic Messages API.
type AnthropicGenerator struct {
	apiKey      string
	model       string
	baseURL     string
	temperature float64
	maxTokens   int
	client      *http.Client
	retry       retrier
}

type anthropicRequest struct {
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens"`
	System      string        `json:"system,omitempty"`
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *apiError `json:"error"`
}

// NewAnthropicGenerator creates an AnthropicGenerator.
func NewAnthropicGenerator(opts GeneratorOptions) *AnthropicGenerator {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = defaultAnthropicBaseURL
	}

	return &AnthropicGenerator{
		apiKey:      opts.APIKey,
		model:       opts.Model,
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		temperature: opts.Temperature,
		maxTokens:   opts.MaxTokens,
		client:      newHTTPClient(opts.Timeout),
		retry:       newRetrier(opts.MaxRetries),
	}
}

// Generate requests a doc comment for code.
func (g *AnthropicGenerator) Generate(ctx context.Context, code string) (string, error) {
	return g.retry.do(ctx, func(ctx context.Context) (string, error) {
		return g.message(ctx, code)
	})
}

func (g *AnthropicGenerator) message(ctx context.Context, code string) (string, error) {
	reqBody := anthropicRequest{
		Model:       g.model,
		MaxTokens:   g.maxTokens,
		System:      SystemPrompt,
		Temperature: g.temperature,
		Messages: []chatMessage{
			{Role: "user", Content: userPrompt(code)},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", g.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("anthropic api: %w", err)
	}

	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
		return "", &RetryableError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("anthropic api status %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var apiResp anthropicResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if apiResp.Error != nil {
		return "", fmt.Errorf("anthropic error: %s: %s", apiResp.Error.Type, apiResp.Error.Message)
	}

	for _, block := range apiResp.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}

	return "", errors.New("empty response from anthropic")
}

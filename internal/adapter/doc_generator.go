package adapter

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// SystemPrompt is sent with every documentation request.
const SystemPrompt = "You are a technical documentation expert. Generate a JSDoc comment for the following function. " +
	"Include parameter descriptions, return type, and a clear description of what the function does. " +
	"Use proper JSDoc syntax. Respond with the comment block only."

// DocGenerator produces a documentation comment for a function's source.
type DocGenerator interface {
	Generate(ctx context.Context, code string) (string, error)
}

// GeneratorOptions configures NewDocGenerator.
type GeneratorOptions struct {
	Provider    string
	Model       string
	Temperature float64
	MaxTokens   int
	APIKey      string
	BaseURL     string
	Timeout     time.Duration
	MaxRetries  int
}

const (
	defaultOpenAIBaseURL    = "https://api.openai.com/v1"
	defaultOllamaBaseURL    = "http://localhost:11434/v1"
	defaultAnthropicBaseURL = "https://api.anthropic.com/v1"
	defaultMaxTokens        = 1024
	defaultTimeout          = 60 * time.Second
)

// NewDocGenerator creates the generator selected by opts.Provider.
func NewDocGenerator(opts GeneratorOptions) (DocGenerator, error) {
	if opts.Model == "" {
		return nil, fmt.Errorf("generator model is required")
	}

	if opts.MaxTokens <= 0 {
		opts.MaxTokens = defaultMaxTokens
	}

	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	switch strings.ToLower(opts.Provider) {
	case "openai", "":
		if opts.APIKey == "" {
			return nil, fmt.Errorf("openai API key is not set")
		}

		return NewOpenAIGenerator(opts, defaultOpenAIBaseURL), nil
	case "ollama":
		if opts.APIKey == "" {
			opts.APIKey = "ollama"
		}

		return NewOpenAIGenerator(opts, defaultOllamaBaseURL), nil
	case "anthropic", "claude":
		if opts.APIKey == "" {
			return nil, fmt.Errorf("anthropic API key is not set")
		}

		return NewAnthropicGenerator(opts), nil
	default:
		return nil, fmt.Errorf("unknown generator provider %q", opts.Provider)
	}
}

func userPrompt(code string) string {
	return "Function:\n\n" + code
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleComment = "/**\n * Adds two numbers.\n * @param {number} a\n * @param {number} b\n * @returns {number}\n */"

func noBackoff(int) time.Duration { return 0 }

func TestOpenAIGenerator_Generate(t *testing.T) {
	t.Run("sends chat request", func(t *testing.T) {
		var got chatRequest

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

			_ = json.NewEncoder(w).Encode(map[string]any{
				"choices": []map[string]any{{"message": map[string]string{"role": "assistant", "content": sampleComment}}},
			})
		}))
		defer srv.Close()

		gen := NewOpenAIGenerator(GeneratorOptions{Model: "gpt-4o-mini", Temperature: 0.7, APIKey: "sk-test", BaseURL: srv.URL + "/v1/"}, "")

		out, err := gen.Generate(context.Background(), "function add(a, b) { return a + b; }")
		require.NoError(t, err)
		assert.Equal(t, sampleComment, out)

		assert.Equal(t, "gpt-4o-mini", got.Model)
		assert.InDelta(t, 0.7, got.Temperature, 1e-9)
		require.Len(t, got.Messages, 2)
		assert.Equal(t, "system", got.Messages[0].Role)
		assert.Equal(t, SystemPrompt, got.Messages[0].Content)
		assert.Contains(t, got.Messages[1].Content, "function add(a, b)")
	})

	t.Run("retries on 429 then succeeds", func(t *testing.T) {
		var calls atomic.Int32

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}

			_ = json.NewEncoder(w).Encode(map[string]any{
				"choices": []map[string]any{{"message": map[string]string{"content": sampleComment}}},
			})
		}))
		defer srv.Close()

		gen := NewOpenAIGenerator(GeneratorOptions{Model: "m", APIKey: "k", BaseURL: srv.URL, MaxRetries: 3}, "")
		gen.retry.backoff = noBackoff

		out, err := gen.Generate(context.Background(), "f()")
		require.NoError(t, err)
		assert.Equal(t, sampleComment, out)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		var calls atomic.Int32

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		gen := NewOpenAIGenerator(GeneratorOptions{Model: "m", APIKey: "k", BaseURL: srv.URL, MaxRetries: 2}, "")
		gen.retry.backoff = noBackoff

		_, err := gen.Generate(context.Background(), "f()")
		require.Error(t, err)
		assert.True(t, IsRetryable(err))
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("client error is not retried", func(t *testing.T) {
		var calls atomic.Int32

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"message":"bad key"}}`))
		}))
		defer srv.Close()

		gen := NewOpenAIGenerator(GeneratorOptions{Model: "m", APIKey: "k", BaseURL: srv.URL, MaxRetries: 3}, "")
		gen.retry.backoff = noBackoff

		_, err := gen.Generate(context.Background(), "f()")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "401")
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("empty choices", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}))
		defer srv.Close()

		gen := NewOpenAIGenerator(GeneratorOptions{Model: "m", APIKey: "k", BaseURL: srv.URL}, "")

		_, err := gen.Generate(context.Background(), "f()")
		assert.Error(t, err)
	})
}

func TestAnthropicGenerator_Generate(t *testing.T) {
	var got anthropicRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"` + "/** Adds. */" + `"}]}`))
	}))
	defer srv.Close()

	gen := NewAnthropicGenerator(GeneratorOptions{Model: "claude-3-5-haiku-latest", APIKey: "key", BaseURL: srv.URL, MaxTokens: 256})

	out, err := gen.Generate(context.Background(), "const f = () => 1;")
	require.NoError(t, err)
	assert.Equal(t, "/** Adds. */", out)
	assert.Equal(t, SystemPrompt, got.System)
	assert.Equal(t, 256, got.MaxTokens)
	require.Len(t, got.Messages, 1)
	assert.Contains(t, got.Messages[0].Content, "const f = () => 1;")
}

func TestNewDocGenerator(t *testing.T) {
	t.Run("openai requires key", func(t *testing.T) {
		_, err := NewDocGenerator(GeneratorOptions{Provider: "openai", Model: "m"})
		assert.Error(t, err)
	})

	t.Run("ollama default base url", func(t *testing.T) {
		gen, err := NewDocGenerator(GeneratorOptions{Provider: "ollama", Model: "llama3"})
		require.NoError(t, err)

		oa, ok := gen.(*OpenAIGenerator)
		require.True(t, ok)
		assert.Equal(t, defaultOllamaBaseURL, oa.baseURL)
		assert.Equal(t, "ollama", oa.apiKey)
	})

	t.Run("anthropic", func(t *testing.T) {
		gen, err := NewDocGenerator(GeneratorOptions{Provider: "anthropic", Model: "m", APIKey: "k"})
		require.NoError(t, err)
		assert.IsType(t, &AnthropicGenerator{}, gen)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := NewDocGenerator(GeneratorOptions{Provider: "gemini", Model: "m", APIKey: "k"})
		assert.Error(t, err)
	})

	t.Run("model required", func(t *testing.T) {
		_, err := NewDocGenerator(GeneratorOptions{Provider: "openai", APIKey: "k"})
		assert.Error(t, err)
	})
}

func TestRetrier_ContextCancelled(t *testing.T) {
	r := retrier{maxRetries: 3, backoff: func(int) time.Duration { return time.Hour }}

	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	_, err := r.do(ctx, func(context.Context) (string, error) {
		calls++
		cancel()

		return "", &RetryableError{StatusCode: 503}
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestBackoff(t *testing.T) {
	for attempt := 0; attempt < 8; attempt++ {
		d := Backoff(attempt)
		assert.GreaterOrEqual(t, d, time.Second)
		assert.Less(t, d, 45*time.Second)
	}
}

func TestBackoff_LargeAttempts(t *testing.T) {
	for _, attempt := range []int{-1, 30, 34, 63, 64, 1000} {
		d := Backoff(attempt)
		assert.GreaterOrEqualf(t, d, time.Second, "attempt %d", attempt)
		assert.Lessf(t, d, 45*time.Second, "attempt %d", attempt)
	}

	assert.GreaterOrEqual(t, Backoff(100), maxBackoff)
}

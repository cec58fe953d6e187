package llmHandlers

import (
	"context"
	"fmt"
	"os"
)

type Provider string

const (
	ProviderOpenRouter Provider = "openrouter" // any OpenAI-compatible endpoint
	ProviderGemini     Provider = "gemini"
)

const defaultOpenRouterURL = "https://openrouter.ai/api/v1"

// New builds an LLM client for the given provider.
// Temperature/MaxTokens default to the synthesis settings; callers that need
// deterministic output (intent classification) pass their own values.
func New(kind string, temperature float64, maxTokens int) (Client, error) {
	switch Provider(kind) {
	case ProviderOpenRouter:
		baseURL := os.Getenv("OPENROUTER_BASE_URL")
		if baseURL == "" {
			baseURL = defaultOpenRouterURL
		}
		model := os.Getenv("OPENROUTER_MODEL")
		if model == "" {
			model = "openai/gpt-4o-mini"
		}
		return NewLangChainClient(LangChainConfig{
			Model:       model,
			BaseURL:     baseURL,
			APIKey:      os.Getenv("OPENROUTER_API_KEY"),
			Temperature: temperature,
			MaxTokens:   maxTokens,
		})
	case ProviderGemini:
		client, err := NewGenaiGeminiClient(context.Background())
		if err != nil {
			return nil, err
		}
		client.Temperature = float32(temperature)
		if maxTokens > 0 {
			client.MaxTokens = int32(maxTokens)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown provider %s", kind)
	}
}

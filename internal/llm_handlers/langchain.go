package llmHandlers

import (
	"context"
	"fmt"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

type LangChainClient struct {
	llm llms.Model

	Temperature float64
	MaxTokens   int
}

type LangChainConfig struct {
	Model   string // e.g. "openai/gpt-4o-mini" on OpenRouter
	BaseURL string // OpenRouter or any OpenAI-compatible endpoint
	APIKey  string // if not set, it’ll fall back to env

	Temperature float64
	MaxTokens   int
}

func NewLangChainClient(cfg LangChainConfig) (*LangChainClient, error) {
	opts := []openai.Option{
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	if cfg.APIKey != "" {
		opts = append(opts, openai.WithToken(cfg.APIKey))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create langchain openai client: %w", err)
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 300
	}

	return &LangChainClient{
		llm:         llm,
		Temperature: cfg.Temperature,
		MaxTokens:   maxTokens,
	}, nil
}

func (c *LangChainClient) Chat(ctx context.Context, systemMessage string, messages []Message) (string, error) {
	// Fixed wall-clock budget; on expiry callers treat the call as a soft failure.
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msgContents := make([]llms.MessageContent, 0, len(messages)+1)
	if systemMessage != "" {
		msgContents = append(msgContents, llms.TextParts(llms.ChatMessageTypeSystem, systemMessage))
	}
	for _, m := range messages {
		var msgType llms.ChatMessageType
		switch m.Role {
		case "system":
			msgType = llms.ChatMessageTypeSystem
		case "user":
			msgType = llms.ChatMessageTypeHuman
		case "assistant":
			msgType = llms.ChatMessageTypeAI
		default:
			msgType = llms.ChatMessageTypeHuman
		}
		msgContents = append(msgContents, llms.TextParts(msgType, m.Content))
	}

	resp, err := c.llm.GenerateContent(ctx, msgContents,
		llms.WithTemperature(c.Temperature),
		llms.WithMaxTokens(c.MaxTokens),
	)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from LLM")
	}

	return resp.Choices[0].Content, nil
}

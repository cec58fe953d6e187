package llmHandlers

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"google.golang.org/genai"
)

// GenaiGeminiClient implements Client for Gemini via Google AI API
type GenaiGeminiClient struct {
	client  *genai.Client
	modelID string

	Temperature float32
	MaxTokens   int32
}

func NewGenaiGeminiClient(ctx context.Context) (*GenaiGeminiClient, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	modelID := os.Getenv("GEMINI_MODEL_ID")

	if apiKey == "" || modelID == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY and GEMINI_MODEL_ID must be set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})

	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}

	return &GenaiGeminiClient{
		client:      client,
		modelID:     modelID,
		Temperature: 0.2,
		MaxTokens:   1024,
	}, nil
}

// convertMessagesToGenaiContent maps our Message format to genai.Content.
// System messages are gathered separately; "assistant" becomes "model".
func convertMessagesToGenaiContent(messages []Message) (string, []*genai.Content) {
	systemParts := []string{}
	contents := []*genai.Content{}

	for _, m := range messages {
		role := strings.ToLower(strings.TrimSpace(string(m.Role)))

		if role == "system" {
			systemParts = append(systemParts, m.Content)
			continue
		}

		roleOut := "user"
		if role == "assistant" || role == "model" {
			roleOut = "model"
		}

		textPart := &genai.Part{Text: m.Content}
		contents = append(contents, &genai.Content{
			Role:  roleOut,
			Parts: []*genai.Part{textPart},
		})
	}

	return strings.Join(systemParts, "\n"), contents
}

func (v *GenaiGeminiClient) Chat(ctx context.Context, systemMessage string, messages []Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	inlineSystem, contents := convertMessagesToGenaiContent(messages)

	genConfig := &genai.GenerateContentConfig{
		Temperature:     &v.Temperature,
		MaxOutputTokens: v.MaxTokens,
	}

	system := systemMessage
	if system == "" {
		system = inlineSystem
	}
	if system != "" {
		systemPart := &genai.Part{Text: system}
		genConfig.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{systemPart},
		}
	}

	resp, err := v.client.Models.GenerateContent(ctx, v.modelID, contents, genConfig)
	if err != nil {
		return "", fmt.Errorf("gemini GenerateContent: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if part.Text != "" {
					sb.WriteString(part.Text)
				}
			}
		}
	}

	return sb.String(), nil
}

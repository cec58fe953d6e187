package llmHandlers

import (
	"context"

	"debugmate-backend/internal/models"
)

// Message is one conversation turn handed to a provider. Role reuses the
// persisted chat roles; the system message travels separately.
type Message struct {
	Role    models.Role `json:"role"`
	Content string      `json:"content"`
}

// Client is the single surface the rest of the backend talks to.
// Providers are opaque: a failed call returns an error and the caller
// substitutes a fallback string; nothing upstream ever retries.
type Client interface {
	Chat(ctx context.Context, systemMessage string, messages []Message) (string, error)
}

// Package llm wraps the chat completion upstream. The governance layer
// treats it as opaque: it returns text or it fails.
package llm

import (
	"context"

	"github.com/FeeTheDeveloper/ftd-thegoat-site/internal/models"
)

// Client produces one assistant reply for a conversation.
type Client interface {
	Chat(ctx context.Context, messages []models.ChatMessage) (string, error)
}

// ModelConfig holds generation parameters shared by both providers.
type ModelConfig struct {
	Model       string
	Temperature float32
	MaxTokens   int
}

// DefaultModelConfig matches the concierge tuning: short, deterministic
// answers.
func DefaultModelConfig() ModelConfig {
	return ModelConfig{
		Model:       "gpt-4o-mini",
		Temperature: 0.2,
		MaxTokens:   300,
	}
}

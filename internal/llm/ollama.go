package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"

	"github.com/FeeTheDeveloper/ftd-thegoat-site/internal/models"
)

// OllamaClient serves the chat endpoint from a local model. Development
// alternative to OpenAI so the full request path works offline.
type OllamaClient struct {
	client *api.Client
	config ModelConfig
}

func NewOllamaClient(host, model string) (*OllamaClient, error) {
	base, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host: %w", err)
	}

	config := DefaultModelConfig()
	config.Model = model

	return &OllamaClient{
		client: api.NewClient(base, &http.Client{Timeout: 2 * time.Minute}),
		config: config,
	}, nil
}

func (c *OllamaClient) Chat(ctx context.Context, messages []models.ChatMessage) (string, error) {
	ollamaMessages := make([]api.Message, len(messages))
	for i, msg := range messages {
		ollamaMessages[i] = api.Message{Role: string(msg.Role), Content: msg.Content}
	}

	stream := false
	req := &api.ChatRequest{
		Model:    c.config.Model,
		Messages: ollamaMessages,
		Stream:   &stream,
		Options: map[string]any{
			"temperature": c.config.Temperature,
			"num_predict": c.config.MaxTokens,
		},
	}

	var reply strings.Builder
	err := c.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		reply.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama chat failed: %w", err)
	}

	out := strings.TrimSpace(reply.String())
	if out == "" {
		return "", ErrEmptyReply
	}
	return out, nil
}

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/FeeTheDeveloper/ftd-thegoat-site/internal/models"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// ErrEmptyReply means the upstream answered 200 with no usable content.
// Handlers map it to 502 the same as a hard failure.
var ErrEmptyReply = errors.New("upstream returned an empty reply")

type OpenAIClient struct {
	apiKey     string
	baseURL    string
	config     ModelConfig
	httpClient *http.Client
}

type OpenAIOption func(*OpenAIClient)

// WithBaseURL points the client at a different chat-completions host.
// Used by tests and OpenAI-compatible providers.
func WithBaseURL(baseURL string) OpenAIOption {
	return func(c *OpenAIClient) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

func WithModelConfig(config ModelConfig) OpenAIOption {
	return func(c *OpenAIClient) { c.config = config }
}

func NewOpenAIClient(apiKey string, opts ...OpenAIOption) *OpenAIClient {
	c := &OpenAIClient{
		apiKey:  apiKey,
		baseURL: defaultOpenAIBaseURL,
		config:  DefaultModelConfig(),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type chatCompletionRequest struct {
	Model       string               `json:"model"`
	Messages    []models.ChatMessage `json:"messages"`
	Temperature float32              `json:"temperature"`
	MaxTokens   int                  `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *OpenAIClient) Chat(ctx context.Context, messages []models.ChatMessage) (string, error) {
	reqBody, err := json.Marshal(chatCompletionRequest{
		Model:       c.config.Model,
		Messages:    messages,
		Temperature: c.config.Temperature,
		MaxTokens:   c.config.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach upstream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = "upstream request failed"
		}
		return "", fmt.Errorf("upstream error (status %d): %s", resp.StatusCode, msg)
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("failed to parse upstream response: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", ErrEmptyReply
	}
	reply := strings.TrimSpace(completion.Choices[0].Message.Content)
	if reply == "" {
		return "", ErrEmptyReply
	}
	return reply, nil
}

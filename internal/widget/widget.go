// Package widget is the client side of the concierge chat: an ordered,
// length-capped conversation that talks to the public API and persists its
// transcript locally. The server keeps no conversation state at all.
package widget

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/FeeTheDeveloper/ftd-thegoat-site/internal/models"
)

const (
	// MaxHistory mirrors the server's message-count bound; trimming here
	// keeps every send inside the chat schema.
	MaxHistory = 20

	// LeadRoutingPhrase in an assistant reply flips the conversation into
	// lead capture.
	LeadRoutingPhrase = "book an intro call"
)

var greeting = models.ChatMessage{
	Role:    models.RoleAssistant,
	Content: "You are connected to Fee's concierge. Share the outcome, timeline, and constraints, and I will route the next step.",
}

type Conversation struct {
	serverURL      string
	transcriptPath string
	httpClient     *http.Client
	history        []models.ChatMessage
}

type Option func(*Conversation)

func WithHTTPClient(c *http.Client) Option {
	return func(conv *Conversation) { conv.httpClient = c }
}

// WithTranscript persists the conversation to path across sessions. Without
// it the history lives only in memory.
func WithTranscript(path string) Option {
	return func(conv *Conversation) { conv.transcriptPath = path }
}

func NewConversation(serverURL string, opts ...Option) *Conversation {
	conv := &Conversation{
		serverURL:  strings.TrimRight(serverURL, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
		history:    []models.ChatMessage{greeting},
	}
	for _, o := range opts {
		o(conv)
	}
	conv.load()
	return conv
}

func (c *Conversation) History() []models.ChatMessage {
	out := make([]models.ChatMessage, len(c.history))
	copy(out, c.history)
	return out
}

// Send appends the user message, truncates the history, and exchanges it
// for the assistant's reply. wantsLead reports whether the reply asked to
// route the caller into the lead form. Error responses from the server are
// surfaced verbatim.
func (c *Conversation) Send(ctx context.Context, text string) (reply string, wantsLead bool, err error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", false, errors.New("empty message")
	}

	c.history = append(c.history, models.ChatMessage{Role: models.RoleUser, Content: trimmed})
	c.truncate()

	body, err := json.Marshal(map[string]any{"messages": c.history})
	if err != nil {
		return "", false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", false, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", false, err
	}
	defer resp.Body.Close()

	var payload struct {
		Reply string `json:"reply"`
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", false, fmt.Errorf("unexpected response (status %d)", resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK {
		if payload.Error != "" {
			return "", false, errors.New(payload.Error)
		}
		return "", false, fmt.Errorf("request failed (status %d)", resp.StatusCode)
	}
	if payload.Reply == "" {
		return "", false, errors.New("no reply returned")
	}

	c.history = append(c.history, models.ChatMessage{Role: models.RoleAssistant, Content: payload.Reply})
	c.truncate()
	c.save()

	wantsLead = strings.Contains(strings.ToLower(payload.Reply), LeadRoutingPhrase)
	return payload.Reply, wantsLead, nil
}

// SubmitLead posts the mini-form captured after a routing reply. The contact
// schema wants a name and a message body, so both are derived from what the
// concierge actually knows.
func (c *Conversation) SubmitLead(ctx context.Context, email, timeline string) error {
	body, err := json.Marshal(map[string]string{
		"name":     "Concierge lead",
		"email":    email,
		"timeline": timeline,
		"outcomes": "Lead captured via concierge chat.",
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+"/api/contact", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var payload struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&payload) == nil && payload.Error != "" {
			return errors.New(payload.Error)
		}
		return fmt.Errorf("lead submission failed (status %d)", resp.StatusCode)
	}
	return nil
}

func (c *Conversation) truncate() {
	if len(c.history) > MaxHistory {
		c.history = c.history[len(c.history)-MaxHistory:]
	}
}

func (c *Conversation) load() {
	if c.transcriptPath == "" {
		return
	}
	raw, err := os.ReadFile(c.transcriptPath)
	if err != nil {
		return
	}

	var stored []models.ChatMessage
	if err := json.Unmarshal(raw, &stored); err != nil {
		return
	}

	kept := stored[:0]
	for _, msg := range stored {
		if (msg.Role == models.RoleUser || msg.Role == models.RoleAssistant) && msg.Content != "" {
			kept = append(kept, msg)
		}
	}
	if len(kept) > 0 {
		c.history = kept
		c.truncate()
	}
}

func (c *Conversation) save() {
	if c.transcriptPath == "" {
		return
	}
	raw, err := json.Marshal(c.history)
	if err != nil {
		return
	}
	os.WriteFile(c.transcriptPath, raw, 0o600)
}

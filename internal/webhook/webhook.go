// Package webhook delivers accepted contact submissions to the lead
// notification endpoint. Delivery is best effort: the form's success is
// defined by acceptance, not by downstream delivery, so failures are logged
// and swallowed.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/FeeTheDeveloper/ftd-thegoat-site/internal/models"
)

type Sender struct {
	url        string
	httpClient *http.Client
}

type Option func(*Sender)

func WithHTTPClient(c *http.Client) Option {
	return func(s *Sender) { s.httpClient = c }
}

// NewSender builds a lead-webhook sender. An empty URL is valid and means
// deliveries are skipped.
func NewSender(url string, opts ...Option) *Sender {
	s := &Sender{
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Sender) Configured() bool {
	return s.url != ""
}

// Deliver posts the submission as JSON. One attempt, no retry.
func (s *Sender) Deliver(ctx context.Context, submission *models.ContactSubmission) error {
	if s.url == "" {
		return nil
	}

	body, err := json.Marshal(submission)
	if err != nil {
		return fmt.Errorf("failed to marshal submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

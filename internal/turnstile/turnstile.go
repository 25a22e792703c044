// Package turnstile verifies Cloudflare Turnstile tokens server-side.
//
// https://developers.cloudflare.com/turnstile/get-started/server-side-validation/
package turnstile

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

	// Tokens longer than this are garbage; reject without a network call.
	maxTokenLength = 2048
)

type verifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

type Verifier struct {
	secret     string
	production bool
	verifyURL  string
	httpClient *http.Client
}

type Option func(*Verifier)

// WithVerifyURL overrides the siteverify endpoint. Used by tests.
func WithVerifyURL(u string) Option {
	return func(v *Verifier) { v.verifyURL = u }
}

func WithHTTPClient(c *http.Client) Option {
	return func(v *Verifier) { v.httpClient = c }
}

// New builds a verifier. An empty secret means Turnstile is unconfigured:
// verification is skipped in development but rejected in production, so a
// deployment mistake cannot silently turn bot protection off.
func New(secret string, production bool, opts ...Option) *Verifier {
	v := &Verifier{
		secret:     secret,
		production: production,
		verifyURL:  defaultVerifyURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, o := range opts {
		o(v)
	}
	return v
}

// Verify checks a client-submitted token. One attempt, no retry; any
// transport error, non-2xx status, or success:false resolves to false.
func (v *Verifier) Verify(ctx context.Context, token, remoteIP string) bool {
	if v.secret == "" {
		if v.production {
			log.Print("TURNSTILE_SECRET_KEY is not configured in production — rejecting request")
			return false
		}
		log.Print("TURNSTILE_SECRET_KEY not set — skipping Turnstile verification (dev mode)")
		return true
	}

	if token == "" || len(token) > maxTokenLength {
		return false
	}

	form := url.Values{}
	form.Set("secret", v.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		log.Printf("turnstile verification error: %v", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("turnstile verification HTTP error: %d", resp.StatusCode)
		return false
	}

	var body verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false
	}

	if !body.Success {
		log.Printf("turnstile verification failed: %v", body.ErrorCodes)
	}
	return body.Success
}

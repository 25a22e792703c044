// Package seclog emits structured, security-relevant log lines: rate-limit
// hits, validation failures, bot-check rejections, webhook errors. Entries
// carry the caller IP and request id but never names, emails, or message
// content.
package seclog

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/FeeTheDeveloper/ftd-thegoat-site/internal/httpmid"
	"github.com/FeeTheDeveloper/ftd-thegoat-site/internal/ratelimit"
)

type Level string

const (
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

type Entry struct {
	Level     Level          `json:"level"`
	Event     string         `json:"event"`
	Path      string         `json:"path"`
	Method    string         `json:"method"`
	IP        string         `json:"ip"`
	RequestID string         `json:"request_id,omitempty"`
	UserAgent string         `json:"user_agent,omitempty"`
	Meta      map[string]any `json:"meta,omitempty"`
	Timestamp string         `json:"timestamp"`
}

type Logger struct {
	out io.Writer
}

func New(out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}
	return &Logger{out: out}
}

func (l *Logger) Log(level Level, event string, r *http.Request, meta map[string]any) {
	entry := Entry{
		Level:     level,
		Event:     event,
		Path:      r.URL.Path,
		Method:    r.Method,
		IP:        ratelimit.ClientIP(r),
		RequestID: httpmid.RequestID(r.Context()),
		UserAgent: truncate(r.UserAgent(), 200),
		Meta:      meta,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	line, err := json.Marshal(entry)
	if err != nil {
		log.Printf("seclog marshal failed: %v", err)
		return
	}
	l.out.Write(append(line, '\n'))
}

func (l *Logger) RateLimited(r *http.Request, endpoint string) {
	l.Log(LevelWarn, "rate_limited", r, map[string]any{"endpoint": endpoint})
}

func (l *Logger) ValidationFailed(r *http.Request, reason string) {
	l.Log(LevelWarn, "validation_failed", r, map[string]any{"reason": truncate(reason, 200)})
}

func (l *Logger) TurnstileFailed(r *http.Request) {
	l.Log(LevelWarn, "turnstile_verification_failed", r, nil)
}

func (l *Logger) ContactSubmitted(r *http.Request) {
	l.Log(LevelInfo, "contact_form_submitted", r, nil)
}

func (l *Logger) ChatProcessed(r *http.Request, messageCount int) {
	l.Log(LevelInfo, "chat_message_processed", r, map[string]any{"message_count": messageCount})
}

func (l *Logger) WebhookFailed(r *http.Request, err error) {
	l.Log(LevelError, "webhook_delivery_failed", r, map[string]any{"error": truncate(err.Error(), 200)})
}

func (l *Logger) AuthAttempt(r *http.Request, success bool) {
	level := LevelWarn
	if success {
		level = LevelInfo
	}
	l.Log(level, "auth_attempt", r, map[string]any{"success": success})
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) > n {
		return s[:n]
	}
	return s
}

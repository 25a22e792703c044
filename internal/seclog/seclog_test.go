package seclog

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLog_EmitsStructuredLine(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)

	r := httptest.NewRequest("POST", "http://example/api/contact", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	r.Header.Set("User-Agent", "Mozilla/5.0")

	l.ValidationFailed(r, "email: invalid address")

	var entry Entry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not one JSON line: %v", err)
	}
	if entry.Level != LevelWarn {
		t.Fatalf("level = %q", entry.Level)
	}
	if entry.Event != "validation_failed" {
		t.Fatalf("event = %q", entry.Event)
	}
	if entry.IP != "203.0.113.7" {
		t.Fatalf("ip = %q, want first forwarded entry", entry.IP)
	}
	if entry.Path != "/api/contact" || entry.Method != "POST" {
		t.Fatalf("path/method = %q %q", entry.Path, entry.Method)
	}
	if entry.Meta["reason"] != "email: invalid address" {
		t.Fatalf("meta = %v", entry.Meta)
	}
	if entry.Timestamp == "" {
		t.Fatal("timestamp missing")
	}
}

func TestLog_TruncatesLongValues(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)

	r := httptest.NewRequest("POST", "http://example/api/chat", nil)
	r.Header.Set("User-Agent", strings.Repeat("a", 500))

	l.ChatProcessed(r, 3)

	var entry Entry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatal(err)
	}
	if len(entry.UserAgent) > 200 {
		t.Fatalf("user agent length = %d, want capped at 200", len(entry.UserAgent))
	}
}

func TestLog_ContactSubmittedCarriesNoPII(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)

	r := httptest.NewRequest("POST", "http://example/api/contact", strings.NewReader(`{"email":"ada@example.com"}`))
	l.ContactSubmitted(r)

	if strings.Contains(buf.String(), "ada@example.com") {
		t.Fatal("security log must not contain submitted content")
	}
}

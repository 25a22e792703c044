package models

import "time"

// Role of a chat message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// ChatMessage is one turn of the concierge conversation. The server never
// stores these; the full history arrives with every request.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ContactSubmission is a validated lead-capture form, built once per request
// and forwarded to the lead webhook. Not persisted locally.
type ContactSubmission struct {
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Company    string    `json:"company,omitempty"`
	Engagement string    `json:"engagement,omitempty"`
	Timeline   string    `json:"timeline,omitempty"`
	Message    string    `json:"message"`
	PageURL    string    `json:"page_url,omitempty"`
	UserAgent  string    `json:"user_agent,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// AccessLog is one row of the optional request audit trail. CallerKey is the
// rate-limit key (IP derived), never a name or email.
type AccessLog struct {
	ID             int64     `json:"id"`
	Endpoint       string    `json:"endpoint"`
	Method         string    `json:"method"`
	CallerKey      string    `json:"caller_key"`
	StatusCode     int       `json:"status_code"`
	ResponseTimeMs int       `json:"response_time_ms"`
	RequestSize    int64     `json:"request_size"`
	ResponseSize   int64     `json:"response_size"`
	Timestamp      time.Time `json:"timestamp"`
}

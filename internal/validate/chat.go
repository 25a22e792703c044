package validate

import (
	"fmt"

	"github.com/FeeTheDeveloper/ftd-thegoat-site/internal/models"
)

const (
	MaxMessages      = 20
	MaxContentLength = 1000

	// Cumulative cap across the whole conversation. Twenty messages that
	// each clear the per-message bound can still add up to an oversized
	// prompt; the aggregate bound closes that hole.
	MaxTotalChars = 6000
)

// ChatMessages validates and normalizes a conversation payload. Any
// violation rejects the whole payload; there is no partial acceptance.
func ChatMessages(messages []models.ChatMessage) ([]models.ChatMessage, error) {
	if len(messages) == 0 {
		return nil, &FieldError{Field: "messages", Reason: "empty"}
	}
	if len(messages) > MaxMessages {
		return nil, &FieldError{Field: "messages", Reason: fmt.Sprintf("more than %d messages", MaxMessages)}
	}

	totalChars := 0
	cleaned := make([]models.ChatMessage, 0, len(messages))

	for i, msg := range messages {
		switch msg.Role {
		case models.RoleUser, models.RoleAssistant, models.RoleSystem:
		default:
			return nil, &FieldError{Field: fmt.Sprintf("messages[%d].role", i), Reason: "unknown role"}
		}

		content, err := BoundedString(fmt.Sprintf("messages[%d].content", i), msg.Content, true, MaxContentLength)
		if err != nil {
			return nil, err
		}

		totalChars += len(content)
		if totalChars > MaxTotalChars {
			return nil, &FieldError{Field: "messages", Reason: fmt.Sprintf("total content exceeds %d chars", MaxTotalChars)}
		}

		cleaned = append(cleaned, models.ChatMessage{Role: msg.Role, Content: content})
	}

	return cleaned, nil
}

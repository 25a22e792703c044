package validate

import (
	"time"

	"github.com/FeeTheDeveloper/ftd-thegoat-site/internal/models"
)

const (
	maxNameLength       = 200
	maxEmailLength      = 320
	maxCompanyLength    = 200
	maxEngagementLength = 100
	maxTimelineLength   = 100
	maxMessageLength    = 4000
	maxPageURLLength    = 500
)

// ContactInput is the raw contact form as submitted. The message body may
// arrive under Message or Outcomes — the form field was renamed at some
// point and both names stay accepted.
type ContactInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Company    string `json:"company"`
	Budget     string `json:"budget"`
	Engagement string `json:"engagement"`
	Timeline   string `json:"timeline"`
	Message    string `json:"message"`
	Outcomes   string `json:"outcomes"`
	PageURL    string `json:"pageUrl"`
}

// Contact validates the form and builds the submission forwarded to the
// lead webhook. Engagement falls back to the older budget field the same
// way the message body falls back to outcomes.
func Contact(in ContactInput, userAgent string) (*models.ContactSubmission, error) {
	name, err := BoundedString("name", in.Name, true, maxNameLength)
	if err != nil {
		return nil, err
	}

	email, err := Email("email", in.Email, maxEmailLength)
	if err != nil {
		return nil, err
	}

	company, err := BoundedString("company", in.Company, false, maxCompanyLength)
	if err != nil {
		return nil, err
	}

	engagement, err := BoundedString("engagement", in.Engagement, false, maxEngagementLength)
	if err != nil {
		return nil, err
	}
	if engagement == "" {
		if engagement, err = BoundedString("budget", in.Budget, false, maxEngagementLength); err != nil {
			return nil, err
		}
	}

	timeline, err := BoundedString("timeline", in.Timeline, false, maxTimelineLength)
	if err != nil {
		return nil, err
	}

	message, err := BoundedString("message", in.Message, false, maxMessageLength)
	if err != nil {
		return nil, err
	}
	if message == "" {
		if message, err = BoundedString("outcomes", in.Outcomes, false, maxMessageLength); err != nil {
			return nil, err
		}
	}
	if message == "" {
		return nil, &FieldError{Field: "message", Reason: "neither message nor outcomes provided"}
	}

	pageURL, err := BoundedString("pageUrl", in.PageURL, false, maxPageURLLength)
	if err != nil {
		return nil, err
	}

	return &models.ContactSubmission{
		Name:       name,
		Email:      email,
		Company:    company,
		Engagement: engagement,
		Timeline:   timeline,
		Message:    message,
		PageURL:    pageURL,
		UserAgent:  userAgent,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

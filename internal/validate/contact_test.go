package validate

import (
	"strings"
	"testing"
)

func validInput() ContactInput {
	return ContactInput{
		Name:     "Ada",
		Email:    "Ada@Example.COM",
		Timeline: "Q4",
		Outcomes: "Ship the new storefront.",
	}
}

func TestContact_ValidSubmission(t *testing.T) {
	sub, err := Contact(validInput(), "Mozilla/5.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Email != "ada@example.com" {
		t.Fatalf("email = %q, want lowercased", sub.Email)
	}
	if sub.Message != "Ship the new storefront." {
		t.Fatalf("message = %q", sub.Message)
	}
	if sub.UserAgent != "Mozilla/5.0" {
		t.Fatalf("user agent = %q", sub.UserAgent)
	}
	if sub.CreatedAt.IsZero() {
		t.Fatal("createdAt should be set")
	}
}

func TestContact_RejectsBadEmail(t *testing.T) {
	for _, email := range []string{"", "not-an-email", "a@b", "has space@example.com"} {
		in := validInput()
		in.Email = email
		if _, err := Contact(in, ""); err == nil {
			t.Fatalf("email %q: expected rejection", email)
		}
	}
}

func TestContact_MessageOrOutcomes(t *testing.T) {
	in := validInput()
	in.Outcomes = ""
	in.Message = "Direct message field."
	sub, err := Contact(in, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Message != "Direct message field." {
		t.Fatalf("message = %q", sub.Message)
	}

	// message wins when both are present
	in.Outcomes = "Outcomes field."
	sub, err = Contact(in, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Message != "Direct message field." {
		t.Fatalf("message = %q, want message field preferred", sub.Message)
	}
}

func TestContact_RejectsWhenBothMessageFieldsMissing(t *testing.T) {
	in := validInput()
	in.Message = "   "
	in.Outcomes = ""
	if _, err := Contact(in, ""); err == nil {
		t.Fatal("expected rejection when neither message nor outcomes is present")
	}
}

func TestContact_EngagementFallsBackToBudget(t *testing.T) {
	in := validInput()
	in.Engagement = ""
	in.Budget = "Retainer"
	sub, err := Contact(in, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Engagement != "Retainer" {
		t.Fatalf("engagement = %q, want budget fallback", sub.Engagement)
	}
}

func TestContact_RejectsOversizedFields(t *testing.T) {
	in := validInput()
	in.Name = strings.Repeat("a", 201)
	if _, err := Contact(in, ""); err == nil {
		t.Fatal("expected rejection of oversized name")
	}

	in = validInput()
	in.Outcomes = strings.Repeat("a", 4001)
	if _, err := Contact(in, ""); err == nil {
		t.Fatal("expected rejection of oversized outcomes")
	}
}

func TestContact_RequiresName(t *testing.T) {
	in := validInput()
	in.Name = "  "
	if _, err := Contact(in, ""); err == nil {
		t.Fatal("expected rejection of missing name")
	}
}

func TestBoundedString_OptionalEmptyIsFine(t *testing.T) {
	got, err := BoundedString("company", "   ", false, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Fatalf("got %q, want empty", got)
	}
}

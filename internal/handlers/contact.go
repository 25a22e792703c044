package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/FeeTheDeveloper/ftd-thegoat-site/internal/ratelimit"
	"github.com/FeeTheDeveloper/ftd-thegoat-site/internal/validate"
)

const (
	maxContactBodyBytes = 4000
	webhookTimeout      = 10 * time.Second
)

type contactRequest struct {
	validate.ContactInput
	TurnstileToken string `json:"cf-turnstile-response"`
}

func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	if !h.rateLimit(w, r, h.contactLimiter, "contact") {
		return
	}

	if r.ContentLength > maxContactBodyBytes {
		respondError(w, http.StatusRequestEntityTooLarge, msgTooLarge)
		return
	}

	req, ok := parseContactBody(r)
	if !ok {
		respondError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	submission, err := validate.Contact(req.ContactInput, r.UserAgent())
	if err != nil {
		h.secLog.ValidationFailed(r, err.Error())
		respondError(w, http.StatusBadRequest, msgInvalidContact)
		return
	}

	if !h.verifier.Verify(r.Context(), req.TurnstileToken, ratelimit.ClientIP(r)) {
		h.secLog.TurnstileFailed(r)
		respondError(w, http.StatusForbidden, msgVerifyFailed)
		return
	}

	// Webhook delivery is best effort: the submission is accepted either
	// way, so failures never reach the caller.
	if h.webhookSender.Configured() {
		ctx, cancel := context.WithTimeout(r.Context(), webhookTimeout)
		defer cancel()
		if err := h.webhookSender.Deliver(ctx, submission); err != nil {
			h.secLog.WebhookFailed(r, err)
		}
	} else {
		log.Print("lead webhook not configured — skipping delivery")
	}

	h.secLog.ContactSubmitted(r)
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// parseContactBody accepts the form as JSON or URL-encoded, matching the two
// ways the site has submitted it over time.
func parseContactBody(r *http.Request) (contactRequest, bool) {
	var req contactRequest

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			return req, false
		}
		req.ContactInput = validate.ContactInput{
			Name:       r.PostFormValue("name"),
			Email:      r.PostFormValue("email"),
			Company:    r.PostFormValue("company"),
			Budget:     r.PostFormValue("budget"),
			Engagement: r.PostFormValue("engagement"),
			Timeline:   r.PostFormValue("timeline"),
			Message:    r.PostFormValue("message"),
			Outcomes:   r.PostFormValue("outcomes"),
			PageURL:    r.PostFormValue("pageUrl"),
		}
		req.TurnstileToken = r.PostFormValue("cf-turnstile-response")
		return req, true
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, false
	}
	return req, true
}

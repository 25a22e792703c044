package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/FeeTheDeveloper/ftd-thegoat-site/internal/models"
	"github.com/FeeTheDeveloper/ftd-thegoat-site/internal/validate"
)

const systemPrompt = "This is Fee The Developer's assistant. Tone: confident, concise, executive. Goal: answer questions, qualify the opportunity, and direct users to the next step. No begging, no 'hire me' language."

const chatUpstreamTimeout = 30 * time.Second

type chatRequest struct {
	Messages []models.ChatMessage `json:"messages"`
}

func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	if !h.rateLimit(w, r, h.chatLimiter, "chat") {
		return
	}

	var payload chatRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	messages, err := validate.ChatMessages(payload.Messages)
	if err != nil {
		h.secLog.ValidationFailed(r, err.Error())
		respondError(w, http.StatusBadRequest, msgInvalidMessages)
		return
	}

	if h.llmClient == nil {
		respondError(w, http.StatusInternalServerError, msgMissingUpstream)
		return
	}

	conversation := append(
		[]models.ChatMessage{{Role: models.RoleSystem, Content: systemPrompt}},
		messages...,
	)

	ctx, cancel := context.WithTimeout(r.Context(), chatUpstreamTimeout)
	defer cancel()

	reply, err := h.llmClient.Chat(ctx, conversation)
	if err != nil {
		// Upstream error text passes through to the caller as-is.
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	h.secLog.ChatProcessed(r, len(messages))
	respondJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

// Package handlers wires the request-governance layer around the two public
// endpoints. Every request walks the same strict sequence — rate limit,
// parse, validate, (contact) bot check, side effect — and short-circuits on
// the first failure.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/FeeTheDeveloper/ftd-thegoat-site/internal/db"
	"github.com/FeeTheDeveloper/ftd-thegoat-site/internal/llm"
	"github.com/FeeTheDeveloper/ftd-thegoat-site/internal/models"
	"github.com/FeeTheDeveloper/ftd-thegoat-site/internal/ratelimit"
	"github.com/FeeTheDeveloper/ftd-thegoat-site/internal/seclog"
	"github.com/FeeTheDeveloper/ftd-thegoat-site/internal/stats"
	"github.com/FeeTheDeveloper/ftd-thegoat-site/internal/turnstile"
	"github.com/FeeTheDeveloper/ftd-thegoat-site/internal/webhook"
)

// Fixed caller-facing messages. Specific failure reasons go to the security
// log only.
const (
	msgInvalidJSON     = "Invalid JSON payload."
	msgInvalidMessages = "Invalid message payload."
	msgInvalidContact  = "Invalid submission."
	msgTooLarge        = "Request too large."
	msgRateLimited     = "Too many requests. Please try again shortly."
	msgVerifyFailed    = "Verification failed."
	msgMissingUpstream = "Server is missing chat credentials."
)

type Handler struct {
	chatLimiter    *ratelimit.Limiter
	contactLimiter *ratelimit.Limiter
	verifier       *turnstile.Verifier
	llmClient      llm.Client
	webhookSender  *webhook.Sender
	secLog         *seclog.Logger
	recorder       *stats.Recorder
	access         db.AccessStore
}

func New(
	chatLimiter, contactLimiter *ratelimit.Limiter,
	verifier *turnstile.Verifier,
	llmClient llm.Client,
	webhookSender *webhook.Sender,
	secLog *seclog.Logger,
	recorder *stats.Recorder,
	access db.AccessStore,
) *Handler {
	return &Handler{
		chatLimiter:    chatLimiter,
		contactLimiter: contactLimiter,
		verifier:       verifier,
		llmClient:      llmClient,
		webhookSender:  webhookSender,
		secLog:         secLog,
		recorder:       recorder,
		access:         access,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	api := router.PathPrefix("/api").Subrouter()
	api.Use(h.logAccess)
	api.HandleFunc("/chat", h.Chat).Methods("POST")
	api.HandleFunc("/contact", h.Contact).Methods("POST")
}

// rateLimit runs the endpoint limiter and writes the 429 itself when the
// caller is over quota. Returns false to short-circuit the handler.
func (h *Handler) rateLimit(w http.ResponseWriter, r *http.Request, limiter *ratelimit.Limiter, endpoint string) bool {
	res := limiter.Check(r.Context(), ratelimit.ClientIP(r))
	h.recorder.Record(endpoint, res.Allowed)
	if res.Allowed {
		return true
	}

	h.secLog.RateLimited(r, endpoint)
	w.Header().Set("Retry-After", retryAfterSeconds(res.ResetAt))
	respondError(w, http.StatusTooManyRequests, msgRateLimited)
	return false
}

func retryAfterSeconds(resetAt time.Time) string {
	secs := int(math.Ceil(time.Until(resetAt).Seconds()))
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// logAccess records every API request to the audit store, content-free.
func (h *Handler) logAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()
		recorder := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(recorder, r)

		entry := &models.AccessLog{
			Endpoint:       r.URL.Path,
			Method:         r.Method,
			CallerKey:      ratelimit.ClientIP(r),
			StatusCode:     recorder.statusCode,
			ResponseTimeMs: int(time.Since(startTime).Milliseconds()),
			RequestSize:    r.ContentLength,
			ResponseSize:   int64(recorder.size),
		}
		// Detached from the request context: the insert outlives the
		// response.
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := h.access.LogAccess(ctx, entry); err != nil {
				log.Printf("Failed to log access: %v", err)
			}
		}()
	})
}

type responseRecorder struct {
	http.ResponseWriter
	statusCode    int
	size          int
	body          *bytes.Buffer
	headerWritten bool
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	if !r.headerWritten {
		r.statusCode = statusCode
		r.ResponseWriter.WriteHeader(statusCode)
		r.headerWritten = true
	}
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	size, err := r.ResponseWriter.Write(b)
	r.size += size
	if r.body != nil {
		r.body.Write(b)
	}
	return size, err
}

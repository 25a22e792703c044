package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
)

func TestRoutes_OnlyPostIsRouted(t *testing.T) {
	h := newTestHandler(testDeps{llm: &fakeLLM{reply: "ok"}})
	router := mux.NewRouter()
	h.RegisterRoutes(router)

	r := httptest.NewRequest(http.MethodGet, "http://example/api/chat", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET /api/chat: status = %d, want 405", w.Code)
	}
}

func TestRoutes_ChatThroughRouter(t *testing.T) {
	h := newTestHandler(testDeps{llm: &fakeLLM{reply: "Routed fine."}})
	router := mux.NewRouter()
	h.RegisterRoutes(router)

	r := httptest.NewRequest(http.MethodPost, "http://example/api/chat",
		strings.NewReader(`{"messages":[{"role":"user","content":"hi"}]}`))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", w.Code, w.Body)
	}
}

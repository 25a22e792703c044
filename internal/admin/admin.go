// Package admin exposes the operator-only governance view: rate-limit
// counters and recent denial counts. Disabled entirely when no admin key is
// configured.
package admin

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/FeeTheDeveloper/ftd-thegoat-site/internal/auth"
	"github.com/FeeTheDeveloper/ftd-thegoat-site/internal/db"
	"github.com/FeeTheDeveloper/ftd-thegoat-site/internal/stats"
)

type AdminHandler struct {
	adminKey  string
	jwtSecret string
	recorder  *stats.Recorder
	access    db.AccessStore
}

func NewAdminHandler(adminKey, jwtSecret string, recorder *stats.Recorder, access db.AccessStore) *AdminHandler {
	return &AdminHandler{
		adminKey:  adminKey,
		jwtSecret: jwtSecret,
		recorder:  recorder,
		access:    access,
	}
}

func (h *AdminHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/auth/token", h.Token).Methods("POST")

	authMiddleware := auth.NewMiddleware(h.jwtSecret)
	adminRouter := router.PathPrefix("/admin").Subrouter()
	adminRouter.Use(authMiddleware.Authenticate)
	adminRouter.HandleFunc("/stats", h.Stats).Methods("GET")
}

// Token exchanges the operator key for a short-lived bearer token.
func (h *AdminHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AdminKey string `json:"admin_key"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.AdminKey), []byte(h.adminKey)) != 1 {
		http.Error(w, "Invalid admin key", http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerateToken("operator", h.jwtSecret)
	if err != nil {
		log.Printf("Token generation failed: %v", err)
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"total":       h.recorder.Total(),
		"by_endpoint": h.recorder.ByEndpoint(),
	}

	if store, ok := h.access.(*db.DB); ok {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		if denials, err := store.RecentDenials(ctx, 24); err == nil {
			resp["denials_24h"] = denials
		} else {
			log.Printf("Failed to query recent denials: %v", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

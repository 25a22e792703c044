package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/FeeTheDeveloper/ftd-thegoat-site/internal/admin"
	"github.com/FeeTheDeveloper/ftd-thegoat-site/internal/config"
	"github.com/FeeTheDeveloper/ftd-thegoat-site/internal/db"
	"github.com/FeeTheDeveloper/ftd-thegoat-site/internal/handlers"
	"github.com/FeeTheDeveloper/ftd-thegoat-site/internal/httpmid"
	"github.com/FeeTheDeveloper/ftd-thegoat-site/internal/llm"
	"github.com/FeeTheDeveloper/ftd-thegoat-site/internal/ratelimit"
	"github.com/FeeTheDeveloper/ftd-thegoat-site/internal/seclog"
	"github.com/FeeTheDeveloper/ftd-thegoat-site/internal/stats"
	"github.com/FeeTheDeveloper/ftd-thegoat-site/internal/turnstile"
	"github.com/FeeTheDeveloper/ftd-thegoat-site/internal/webhook"
)

// Rate-limit policies per endpoint. The chat endpoint fronts a billed AI
// call, the contact endpoint a lead webhook; both get a tight fixed window.
const (
	rateWindow  = 60 * time.Second
	chatMax     = 10
	contactMax  = 3
	janitorTick = time.Minute
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	warnings, err := cfg.Validate()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}
	for _, w := range warnings {
		log.Print(w)
	}

	// Rate-limit store: one shared instance behind every limiter. Redis
	// when configured, per-process memory otherwise.
	var store ratelimit.Store
	if cfg.RedisURL != "" {
		redisStore, err := ratelimit.NewRedisStore(cfg.RedisURL)
		if err != nil {
			log.Fatal("Failed to initialize rate limiter:", err)
		}
		defer redisStore.Close()
		store = redisStore
		log.Print("Rate limiting backed by Redis")
	} else {
		memStore := ratelimit.NewMemoryStore()
		memStore.StartJanitor(ctx, janitorTick)
		store = memStore
		log.Print("Rate limiting backed by in-process memory")
	}

	chatLimiter := ratelimit.NewLimiter(store, rateWindow, chatMax, "chat")
	contactLimiter := ratelimit.NewLimiter(store, rateWindow, contactMax, "contact")

	// Chat upstream
	var llmClient llm.Client
	switch cfg.LLMProvider {
	case "ollama":
		llmClient, err = llm.NewOllamaClient(cfg.OllamaHost, cfg.OllamaModel)
		if err != nil {
			log.Fatal("Failed to initialize ollama client:", err)
		}
	default:
		if cfg.OpenAIAPIKey != "" {
			llmClient = llm.NewOpenAIClient(cfg.OpenAIAPIKey)
		}
		// nil client: the chat endpoint answers 500 until the key is set
	}

	// Optional request audit trail
	var accessStore db.AccessStore = db.NopStore{}
	if cfg.DatabaseURL != "" {
		database, err := db.NewDB(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		defer database.Close()
		accessStore = database
	}

	verifier := turnstile.New(cfg.TurnstileSecretKey, cfg.IsProduction())
	sender := webhook.NewSender(cfg.LeadWebhookURL)
	secLog := seclog.New(os.Stderr)
	recorder := stats.NewRecorder()

	// Initialize router
	router := mux.NewRouter()
	router.Use(httpmid.WithRequestID, httpmid.SecurityHeaders)

	router.HandleFunc("/health", healthHandler).Methods("GET")

	apiHandler := handlers.New(chatLimiter, contactLimiter, verifier, llmClient, sender, secLog, recorder, accessStore)
	apiHandler.RegisterRoutes(router)

	if cfg.AdminAPIKey != "" {
		adminHandler := admin.NewAdminHandler(cfg.AdminAPIKey, cfg.JWTSecret, recorder, accessStore)
		adminHandler.RegisterRoutes(router)
		log.Print("Admin API available at /admin/*")
	}

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("Server failed:", err)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"version": "1.0.0",
	})
}

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment names. Anything that is not "production" gets development
// conveniences (bot check skipped when unconfigured, soft env validation).
const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

type Config struct {
	ServerPort string
	AppEnv     string

	// Chat upstream
	LLMProvider  string // "openai" or "ollama"
	OpenAIAPIKey string
	OllamaHost   string
	OllamaModel  string

	// Lead capture
	LeadWebhookURL string

	// Bot verification (Cloudflare Turnstile)
	TurnstileSecretKey string
	TurnstileSiteKey   string

	// Shared counters / optional audit trail
	RedisURL    string
	DatabaseURL string

	// Admin surface; empty disables /admin entirely
	AdminAPIKey string
	JWTSecret   string
}

func Load() (*Config, error) {
	godotenv.Load()

	return &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		AppEnv:             getEnv("APP_ENV", EnvDevelopment),
		LLMProvider:        getEnv("LLM_PROVIDER", "openai"),
		OpenAIAPIKey:       getEnv("OPENAI_API_KEY", ""),
		OllamaHost:         getEnv("OLLAMA_HOST", "http://localhost:11434"),
		OllamaModel:        getEnv("OLLAMA_MODEL", "llama3"),
		LeadWebhookURL:     getEnv("LEAD_WEBHOOK_URL", ""),
		TurnstileSecretKey: getEnv("TURNSTILE_SECRET_KEY", ""),
		TurnstileSiteKey:   getEnv("TURNSTILE_SITE_KEY", ""),
		RedisURL:           getEnv("REDIS_URL", ""),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		AdminAPIKey:        getEnv("ADMIN_API_KEY", ""),
		JWTSecret:          getEnv("JWT_SECRET", ""),
	}, nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, EnvProduction)
}

// Validate reports configuration problems. In production a missing required
// secret is an error; everything optional just degrades (webhook skipped,
// memory rate limiting, bot check off outside production), so those come
// back as warnings for the operator log.
func (c *Config) Validate() (warnings []string, err error) {
	if c.LLMProvider != "openai" && c.LLMProvider != "ollama" {
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", c.LLMProvider)
	}

	if c.LLMProvider == "openai" && c.OpenAIAPIKey == "" {
		if c.IsProduction() {
			return nil, fmt.Errorf("OPENAI_API_KEY is required in production")
		}
		warnings = append(warnings, "OPENAI_API_KEY not set — chat endpoint will return 500")
	}

	if c.LeadWebhookURL == "" {
		warnings = append(warnings, "LEAD_WEBHOOK_URL not set — contact submissions will not be forwarded")
	}
	if c.TurnstileSecretKey == "" {
		if c.IsProduction() {
			warnings = append(warnings, "TURNSTILE_SECRET_KEY not set — contact endpoint will reject all submissions")
		} else {
			warnings = append(warnings, "TURNSTILE_SECRET_KEY not set — bot verification skipped (dev mode)")
		}
	}
	if c.RedisURL == "" {
		warnings = append(warnings, "REDIS_URL not set — rate limits are per-instance only")
	}
	if c.AdminAPIKey != "" && c.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required when ADMIN_API_KEY is set")
	}

	return warnings, nil
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

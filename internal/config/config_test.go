package config

import (
	"strings"
	"testing"
)

func baseConfig() *Config {
	return &Config{
		ServerPort:   "8080",
		AppEnv:       EnvDevelopment,
		LLMProvider:  "openai",
		OpenAIAPIKey: "sk-test",
	}
}

func TestValidate_DevelopmentMissingOptionalOnlyWarns(t *testing.T) {
	cfg := baseConfig()
	cfg.OpenAIAPIKey = ""

	warnings, err := cfg.Validate()
	if err != nil {
		t.Fatalf("development must not hard-fail: %v", err)
	}
	if len(warnings) == 0 {
		t.Fatal("expected warnings for missing config")
	}
}

func TestValidate_ProductionRequiresOpenAIKey(t *testing.T) {
	cfg := baseConfig()
	cfg.AppEnv = EnvProduction
	cfg.OpenAIAPIKey = ""

	if _, err := cfg.Validate(); err == nil {
		t.Fatal("production without OPENAI_API_KEY must fail")
	}
}

func TestValidate_OllamaProviderNeedsNoKey(t *testing.T) {
	cfg := baseConfig()
	cfg.AppEnv = EnvProduction
	cfg.LLMProvider = "ollama"
	cfg.OpenAIAPIKey = ""

	if _, err := cfg.Validate(); err != nil {
		t.Fatalf("ollama provider should not require an OpenAI key: %v", err)
	}
}

func TestValidate_UnknownProvider(t *testing.T) {
	cfg := baseConfig()
	cfg.LLMProvider = "claude"
	if _, err := cfg.Validate(); err == nil {
		t.Fatal("unknown provider must fail")
	}
}

func TestValidate_AdminKeyRequiresJWTSecret(t *testing.T) {
	cfg := baseConfig()
	cfg.AdminAPIKey = "key"
	cfg.JWTSecret = ""
	if _, err := cfg.Validate(); err == nil {
		t.Fatal("admin key without JWT secret must fail")
	}

	cfg.JWTSecret = "secret"
	if _, err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_TurnstileWarningMentionsMode(t *testing.T) {
	cfg := baseConfig()
	warnings, err := cfg.Validate()
	if err != nil {
		t.Fatal(err)
	}

	found := false
	for _, w := range warnings {
		if strings.Contains(w, "TURNSTILE_SECRET_KEY") {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a turnstile warning when secret is unset")
	}
}

func TestIsProduction(t *testing.T) {
	cfg := baseConfig()
	if cfg.IsProduction() {
		t.Fatal("development config reported production")
	}
	cfg.AppEnv = "Production"
	if !cfg.IsProduction() {
		t.Fatal("case-insensitive production check failed")
	}
}

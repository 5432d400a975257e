package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "prod" {
		t.Fatalf("expected App.Env to be prod, got %q", cfg.App.Env)
	}
	if cfg.Redis.URL != "redis://localhost:6379/0" {
		t.Fatalf("unexpected Redis URL: %q", cfg.Redis.URL)
	}
	if cfg.Backend.BaseURL != "http://localhost:3001/api" {
		t.Fatalf("unexpected backend default %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.Timeout != 15*time.Second {
		t.Fatalf("expected backend timeout 15s, got %v", cfg.Backend.Timeout)
	}
	if cfg.JWT.Expiration() != 8*time.Hour {
		t.Fatalf("expected 8h session expiration, got %v", cfg.JWT.Expiration())
	}
	if !cfg.Pricing.CardSurchargePercent.IsZero() {
		t.Fatalf("expected zero card surcharge, got %s", cfg.Pricing.CardSurchargePercent)
	}
	if cfg.Numbering.QuotePrefix != "ORC-" || cfg.Numbering.OrderPrefix != "OS-" {
		t.Fatalf("unexpected numbering prefixes %+v", cfg.Numbering)
	}
}

func TestLoad_OverridesParsed(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvCardSurcharge, "4.99")
	t.Setenv(EnvCORSOrigins, "https://grafica.example,https://admin.grafica.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Pricing.CardSurchargePercent.String() != "4.99" {
		t.Fatalf("expected surcharge 4.99, got %s", cfg.Pricing.CardSurchargePercent)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 {
		t.Fatalf("expected two origins, got %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_ValidationAggregatesErrors(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvBackendURL, "not a url")
	t.Setenv(EnvCardSurcharge, "-1")

	_, err := Load()
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, EnvBackendURL) || !strings.Contains(msg, EnvCardSurcharge) {
		t.Fatalf("expected both problems reported, got %q", msg)
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "prod")
	t.Setenv(EnvAppPort, "8080")
	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
	t.Setenv(EnvJWTSecret, "secret")
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "prod"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
}

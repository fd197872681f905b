package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.APIPort != "8000" {
		t.Fatalf("expected default port 8000, got %s", cfg.APIPort)
	}
	if cfg.SessionBackend != "memory" {
		t.Fatalf("expected memory backend, got %s", cfg.SessionBackend)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Fatalf("expected 30m session ttl, got %s", cfg.SessionTTL)
	}
	if cfg.NATSEnabled {
		t.Fatalf("expected nats disabled by default")
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "http://localhost:3000" {
		t.Fatalf("unexpected default origins %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_PORT", "9000")
	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("SESSION_TTL_SECONDS", "60")
	t.Setenv("NATS_ENABLED", "true")
	t.Setenv("MAX_RESULTS", "5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg := Load()
	if cfg.APIPort != "9000" {
		t.Fatalf("expected overridden port, got %s", cfg.APIPort)
	}
	if cfg.SessionBackend != "redis" {
		t.Fatalf("expected redis backend, got %s", cfg.SessionBackend)
	}
	if cfg.SessionTTL != time.Minute {
		t.Fatalf("expected 1m ttl, got %s", cfg.SessionTTL)
	}
	if !cfg.NATSEnabled {
		t.Fatalf("expected nats enabled")
	}
	if cfg.MaxResults != 5 {
		t.Fatalf("expected 5 max results, got %d", cfg.MaxResults)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("MAX_RESULTS", "lots")
	t.Setenv("NATS_ENABLED", "maybe")

	cfg := Load()
	if cfg.MaxResults != 10 {
		t.Fatalf("expected fallback max results, got %d", cfg.MaxResults)
	}
	if cfg.NATSEnabled {
		t.Fatalf("expected fallback nats flag")
	}
}

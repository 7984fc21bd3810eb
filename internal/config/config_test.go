package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("GROOM_API_URL", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("REDIS_ADDR", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.GroomAPIURL != "http://127.0.0.1:8000" {
		t.Fatalf("expected default API URL, got %s", cfg.GroomAPIURL)
	}
	if cfg.SessionTTL != 3*time.Hour {
		t.Fatalf("expected 3h session TTL, got %s", cfg.SessionTTL)
	}
	if cfg.RedisAddr != "" {
		t.Fatalf("expected empty redis addr, got %s", cfg.RedisAddr)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("GROOM_API_URL", "https://api.grooming.example")
	t.Setenv("GROOM_API_TIMEOUT", "5s")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("SESSION_COOKIE", "sid")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_TLS", "true")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.GroomAPIURL != "https://api.grooming.example" {
		t.Fatalf("expected API URL override, got %s", cfg.GroomAPIURL)
	}
	if cfg.GroomAPITimeout != 5*time.Second {
		t.Fatalf("expected 5s API timeout, got %s", cfg.GroomAPITimeout)
	}
	if cfg.SessionTTL != 90*time.Minute {
		t.Fatalf("expected 90m session TTL, got %s", cfg.SessionTTL)
	}
	if cfg.SessionCookie != "sid" {
		t.Fatalf("expected cookie override, got %s", cfg.SessionCookie)
	}
	if !cfg.RedisTLS {
		t.Fatal("expected redis TLS enabled")
	}
}

package config

import (
	"context"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "3000" {
		t.Fatalf("unexpected default port %q", cfg.Port)
	}
	if cfg.BackendBaseURL != "http://localhost:5000" {
		t.Fatalf("unexpected default backend %q", cfg.BackendBaseURL)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Fatalf("unexpected default ttl %v", cfg.SessionTTL)
	}
	if cfg.SearchDebounce != 300*time.Millisecond {
		t.Fatalf("unexpected default debounce %v", cfg.SearchDebounce)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("BACKEND_BASE_URL", "https://api.internal:9000")
	t.Setenv("SEARCH_DEBOUNCE", "150ms")
	t.Setenv("REDIS_ADDR", "redis:6380")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8081" || cfg.BackendBaseURL != "https://api.internal:9000" {
		t.Fatalf("environment not applied: %+v", cfg)
	}
	if cfg.SearchDebounce != 150*time.Millisecond {
		t.Fatalf("unexpected debounce %v", cfg.SearchDebounce)
	}
	if cfg.Redis.Addr != "redis:6380" {
		t.Fatalf("unexpected redis addr %q", cfg.Redis.Addr)
	}
}

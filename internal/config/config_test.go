package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
	if cfg.DBPath != "sag.db" {
		t.Errorf("DBPath = %q, want sag.db", cfg.DBPath)
	}
	if cfg.BaseURL != "http://localhost:8080" {
		t.Errorf("BaseURL = %q, want http://localhost:8080", cfg.BaseURL)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.PollInterval != 3*time.Second {
		t.Errorf("PollInterval = %v, want 3s", cfg.PollInterval)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SAG_ADDR", ":9090")
	t.Setenv("SAG_DB_PATH", "/tmp/test.db")
	t.Setenv("SAG_BASE_URL", "https://games.example.com")
	t.Setenv("SAG_ADMIN_PHRASE", "taco-llama-disco")
	t.Setenv("SAG_LOG_LEVEL", "debug")
	t.Setenv("SAG_POLL_INTERVAL_SECONDS", "10")

	cfg := Load()

	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %q, want :9090", cfg.Addr)
	}
	if cfg.DBPath != "/tmp/test.db" {
		t.Errorf("DBPath = %q, want /tmp/test.db", cfg.DBPath)
	}
	if cfg.BaseURL != "https://games.example.com" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.AdminPhrase != "taco-llama-disco" {
		t.Errorf("AdminPhrase = %q", cfg.AdminPhrase)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.PollInterval != 10*time.Second {
		t.Errorf("PollInterval = %v, want 10s", cfg.PollInterval)
	}
}

func TestGetDurationEnv_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"not a number", "abc", 3 * time.Second},
		{"zero", "0", 3 * time.Second},
		{"negative", "-5", 3 * time.Second},
		{"valid", "7", 7 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SAG_POLL_INTERVAL_SECONDS", tt.value)
			if got := getDurationEnv("SAG_POLL_INTERVAL_SECONDS", 3); got != tt.want {
				t.Errorf("getDurationEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}

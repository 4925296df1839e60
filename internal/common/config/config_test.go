package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
# POS configuration
backend:
  base_url: "http://127.0.0.1:5000/"
  timeout_seconds: 5

auth:
  email: manager@example.com
  password: manager123

rabbitmq:
  host: localhost
  port: 5672
  user: guest
  password: guest

redis:
  addr: "localhost:6379"
  menu_ttl_seconds: 120

board:
  poll_interval_seconds: 30
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Backend.BaseURL != "http://127.0.0.1:5000" {
		t.Errorf("base_url = %q, trailing slash should be trimmed", cfg.Backend.BaseURL)
	}
	if cfg.BackendTimeout() != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", cfg.BackendTimeout())
	}
	if cfg.Auth.Email != "manager@example.com" || cfg.Auth.Password != "manager123" {
		t.Errorf("auth not parsed: %+v", cfg.Auth)
	}
	if cfg.Rabbit.Host != "localhost" || cfg.Rabbit.Port != 5672 {
		t.Errorf("rabbitmq not parsed: %+v", cfg.Rabbit)
	}
	if cfg.Redis.Addr != "localhost:6379" || cfg.MenuTTL() != 2*time.Minute {
		t.Errorf("redis not parsed: %+v", cfg.Redis)
	}
	if cfg.PollInterval() != 30*time.Second {
		t.Errorf("poll interval = %v, want 30s", cfg.PollInterval())
	}
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "backend:\n  base_url: http://localhost:5000\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BackendTimeout() != 10*time.Second {
		t.Errorf("default timeout = %v, want 10s", cfg.BackendTimeout())
	}
	if cfg.PollInterval() != 30*time.Second {
		t.Errorf("default poll interval = %v, want 30s", cfg.PollInterval())
	}
	if cfg.Rabbit.Host != "" || cfg.Redis.Addr != "" {
		t.Error("optional sections should stay empty when absent")
	}
}

func TestLoadMissingBackend(t *testing.T) {
	path := writeConfig(t, "auth:\n  email: x@y.z\n")
	if _, err := Load(path); err == nil {
		t.Error("expected an error when backend base_url is missing")
	}
}

package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
)

// Backend points at the external REST API that owns all persistent state.
type Backend struct {
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout_seconds"`
}

// Auth holds the manager credentials used by the privileged services.
// Empty credentials simply disable the privileged surface.
type Auth struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

// MQ is the optional broker for push refresh; an empty host disables it and
// boards fall back to polling alone.
type MQ struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	User string `yaml:"user"`
	Pass string `yaml:"password"`
}

// Redis is the optional menu-catalog cache; an empty addr disables it.
type Redis struct {
	Addr       string `yaml:"addr"`
	MenuTTLSec int    `yaml:"menu_ttl_seconds"`
}

// Board configures the kitchen board refresher.
type Board struct {
	PollIntervalSec int `yaml:"poll_interval_seconds"`
}

type App struct {
	Backend Backend `yaml:"backend"`
	Auth    Auth    `yaml:"auth"`
	Rabbit  MQ      `yaml:"rabbitmq"`
	Redis   Redis   `yaml:"redis"`
	Board   Board   `yaml:"board"`
}

func (a App) BackendTimeout() time.Duration {
	if a.Backend.Timeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(a.Backend.Timeout) * time.Second
}

func (a App) PollInterval() time.Duration {
	if a.Board.PollIntervalSec <= 0 {
		return 30 * time.Second
	}
	return time.Duration(a.Board.PollIntervalSec) * time.Second
}

func (a App) MenuTTL() time.Duration {
	if a.Redis.MenuTTLSec <= 0 {
		return time.Minute
	}
	return time.Duration(a.Redis.MenuTTLSec) * time.Second
}

// Load reads a two-level YAML file (section -> key: value), which is all
// the config format this binary needs.
func Load(path string) (App, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return App{}, err
	}
	var a App
	var cur string
	for _, ln := range strings.Split(string(b), "\n") {
		line := strings.TrimSpace(ln)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasSuffix(line, ":") {
			cur = strings.TrimSuffix(line, ":")
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		k := strings.TrimSpace(parts[0])
		v := strings.Trim(strings.TrimSpace(parts[1]), "\"")
		switch cur {
		case "backend":
			assignBackend(&a.Backend, k, v)
		case "auth":
			assignAuth(&a.Auth, k, v)
		case "rabbitmq":
			assignMQ(&a.Rabbit, k, v)
		case "redis":
			assignRedis(&a.Redis, k, v)
		case "board":
			assignBoard(&a.Board, k, v)
		}
	}
	if a.Backend.BaseURL == "" {
		return App{}, errors.New("invalid config: missing backend base_url")
	}
	return a, nil
}

func assignBackend(b *Backend, k, v string) {
	switch k {
	case "base_url":
		b.BaseURL = strings.TrimRight(v, "/")
	case "timeout_seconds":
		b.Timeout = atoiSafe(v)
	}
}

func assignAuth(a *Auth, k, v string) {
	switch k {
	case "email":
		a.Email = v
	case "password":
		a.Password = v
	}
}

func assignMQ(m *MQ, k, v string) {
	switch k {
	case "host":
		m.Host = v
	case "port":
		m.Port = atoiSafe(v)
	case "user":
		m.User = v
	case "password":
		m.Pass = v
	}
}

func assignRedis(r *Redis, k, v string) {
	switch k {
	case "addr":
		r.Addr = v
	case "menu_ttl_seconds":
		r.MenuTTLSec = atoiSafe(v)
	}
}

func assignBoard(b *Board, k, v string) {
	switch k {
	case "poll_interval_seconds":
		b.PollIntervalSec = atoiSafe(v)
	}
}

func atoiSafe(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// FindConfig probes the usual locations.
func FindConfig() (string, error) {
	candidates := []string{"config.yaml", "deploy/config.example.yaml"}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fs.ErrNotExist
}

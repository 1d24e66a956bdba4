package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate config: %v", err)
	}
	if cfg.Server.HTTPAddress != ":8080" {
		t.Errorf("HTTPAddress = %q", cfg.Server.HTTPAddress)
	}
	if !strings.HasSuffix(cfg.Database.Path, filepath.Join(appName, "showcase.db")) {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.API.RateLimitPerMinute != 5 {
		t.Errorf("RateLimitPerMinute = %d", cfg.API.RateLimitPerMinute)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  http_address: ":9090"
  metrics_address: ":9100"
  base_url: https://showcase.example.com
catalog:
  path: /srv/catalog.yaml
  watch: true
database:
  path: /srv/showcase.db
security:
  csrf_key: 0123456789abcdef0123456789abcdef
api:
  rate_limit_per_minute: 10
  cors_origins: [https://a.example.com]
log:
  level: debug
  format: json
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate config: %v", err)
	}
	if cfg.Server.HTTPAddress != ":9090" || cfg.Server.MetricsAddress != ":9100" {
		t.Errorf("server = %+v", cfg.Server)
	}
	if !cfg.Catalog.Watch || cfg.Catalog.Path != "/srv/catalog.yaml" {
		t.Errorf("catalog = %+v", cfg.Catalog)
	}
	if cfg.API.RateLimitPerMinute != 10 || len(cfg.API.CORSOrigins) != 1 {
		t.Errorf("api = %+v", cfg.API)
	}
	if cfg.Server.ReadTimeout != "15s" {
		t.Errorf("ReadTimeout default not applied: %q", cfg.Server.ReadTimeout)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("server: [not a map"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"SHOWCASE_HTTP_ADDRESS":   ":7000",
		"SHOWCASE_CATALOG_PATH":   "/data/catalog.yaml",
		"SHOWCASE_CATALOG_WATCH":  "true",
		"SHOWCASE_SECURE_COOKIES": "1",
		"SHOWCASE_RATE_LIMIT":     "20",
		"SHOWCASE_CORS_ORIGINS":   "https://a.example.com, https://b.example.com",
	}
	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(func(k string) string { return env[k] }); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}

	if cfg.Server.HTTPAddress != ":7000" {
		t.Errorf("HTTPAddress = %q", cfg.Server.HTTPAddress)
	}
	if !cfg.Catalog.Watch || cfg.Catalog.Path != "/data/catalog.yaml" {
		t.Errorf("catalog = %+v", cfg.Catalog)
	}
	if !cfg.Security.SecureCookies {
		t.Error("SecureCookies should be set")
	}
	if cfg.API.RateLimitPerMinute != 20 {
		t.Errorf("RateLimitPerMinute = %d", cfg.API.RateLimitPerMinute)
	}
	if len(cfg.API.CORSOrigins) != 2 || cfg.API.CORSOrigins[1] != "https://b.example.com" {
		t.Errorf("CORSOrigins = %v", cfg.API.CORSOrigins)
	}
}

func TestApplyEnv_RejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"SHOWCASE_CATALOG_WATCH": "sometimes",
		"SHOWCASE_RATE_LIMIT":    "lots",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			cfg := DefaultConfig()
			err := cfg.ApplyEnv(func(k string) string {
				if k == key {
					return value
				}
				return ""
			})
			if err == nil {
				t.Errorf("expected error for %s=%s", key, value)
			}
		})
	}
}

func TestConfigValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty address", func(c *Config) { c.Server.HTTPAddress = "" }},
		{"metrics on same address", func(c *Config) { c.Server.MetricsAddress = c.Server.HTTPAddress }},
		{"bad read timeout", func(c *Config) { c.Server.ReadTimeout = "soon" }},
		{"zero cache ttl", func(c *Config) { c.Highlight.CacheTTL = "0s" }},
		{"base url without scheme", func(c *Config) { c.Server.BaseURL = "showcase.example.com" }},
		{"watch without path", func(c *Config) { c.Catalog.Watch = true }},
		{"short csrf key", func(c *Config) { c.Security.CSRFKey = "short" }},
		{"negative rate limit", func(c *Config) { c.API.RateLimitPerMinute = -1 }},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

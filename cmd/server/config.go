// Package main provides the MCP Showcase server CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const appName = "mcp-showcase"

// Config represents the server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Database  DatabaseConfig  `yaml:"database"`
	Security  SecurityConfig  `yaml:"security"`
	Highlight HighlightConfig `yaml:"highlight"`
	API       APIConfig       `yaml:"api"`
	Log       LogConfig       `yaml:"log"`
	Verbose   bool            `yaml:"-"` // set via CLI flag
}

// ServerConfig contains HTTP listener settings.
type ServerConfig struct {
	HTTPAddress    string `yaml:"http_address"`    // site + API listen address (default: :8080)
	MetricsAddress string `yaml:"metrics_address"` // Prometheus listener, disabled when empty
	ReadTimeout    string `yaml:"read_timeout"`    // default: 15s
	WriteTimeout   string `yaml:"write_timeout"`   // default: 15s
	BaseURL        string `yaml:"base_url"`        // used for share links, inferred from requests when empty
}

// CatalogConfig selects the project catalog.
type CatalogConfig struct {
	Path  string `yaml:"path"`  // YAML catalog file, embedded catalog when empty
	Watch bool   `yaml:"watch"` // reload the file when it changes
}

// DatabaseConfig contains subscriber database settings.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// SecurityConfig contains CSRF and cookie settings.
type SecurityConfig struct {
	CSRFKey       string `yaml:"csrf_key"` // exactly 32 bytes, random per process when empty
	SecureCookies bool   `yaml:"secure_cookies"`
}

// HighlightConfig controls code highlighting.
type HighlightConfig struct {
	Style    string `yaml:"style"`
	CacheTTL string `yaml:"cache_ttl"`
}

// APIConfig contains JSON API settings.
type APIConfig struct {
	RateLimitPerMinute int      `yaml:"rate_limit_per_minute"`
	CORSOrigins        []string `yaml:"cors_origins"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// LoadConfig loads configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()
	return &cfg, nil
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// DefaultConfigPath is where the server looks for a config file when none
// is given.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.yaml")
}

// DefaultDatabasePath places the subscriber database under the XDG data dir.
func DefaultDatabasePath() string {
	return filepath.Join(xdg.DataHome, appName, "showcase.db")
}

// setDefaults sets default values for missing config fields.
func (c *Config) setDefaults() {
	if c.Server.HTTPAddress == "" {
		c.Server.HTTPAddress = ":8080"
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = "15s"
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = "15s"
	}
	if c.Database.Path == "" {
		c.Database.Path = DefaultDatabasePath()
	}
	if c.Highlight.Style == "" {
		c.Highlight.Style = "dracula"
	}
	if c.Highlight.CacheTTL == "" {
		c.Highlight.CacheTTL = "1h"
	}
	if c.API.RateLimitPerMinute == 0 {
		c.API.RateLimitPerMinute = 5
	}
	if len(c.API.CORSOrigins) == 0 {
		c.API.CORSOrigins = []string{"*"}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// ApplyEnv overrides config values from SHOWCASE_* environment variables.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	str := map[string]*string{
		"SHOWCASE_HTTP_ADDRESS":    &c.Server.HTTPAddress,
		"SHOWCASE_METRICS_ADDRESS": &c.Server.MetricsAddress,
		"SHOWCASE_BASE_URL":        &c.Server.BaseURL,
		"SHOWCASE_CATALOG_PATH":    &c.Catalog.Path,
		"SHOWCASE_DB_PATH":         &c.Database.Path,
		"SHOWCASE_CSRF_KEY":        &c.Security.CSRFKey,
		"SHOWCASE_HIGHLIGHT_STYLE": &c.Highlight.Style,
		"SHOWCASE_LOG_LEVEL":       &c.Log.Level,
		"SHOWCASE_LOG_FORMAT":      &c.Log.Format,
	}
	for key, dst := range str {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}

	flags := map[string]*bool{
		"SHOWCASE_CATALOG_WATCH":  &c.Catalog.Watch,
		"SHOWCASE_SECURE_COOKIES": &c.Security.SecureCookies,
	}
	for key, dst := range flags {
		if v := getenv(key); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = b
		}
	}

	if v := getenv("SHOWCASE_RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SHOWCASE_RATE_LIMIT: %w", err)
		}
		c.API.RateLimitPerMinute = n
	}
	if v := getenv("SHOWCASE_CORS_ORIGINS"); v != "" {
		c.API.CORSOrigins = splitList(v)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.HTTPAddress == "" {
		return errors.New("server.http_address is required")
	}
	if c.Server.MetricsAddress != "" && c.Server.MetricsAddress == c.Server.HTTPAddress {
		return errors.New("server.metrics_address must differ from server.http_address")
	}
	for name, value := range map[string]string{
		"server.read_timeout":  c.Server.ReadTimeout,
		"server.write_timeout": c.Server.WriteTimeout,
		"highlight.cache_ttl":  c.Highlight.CacheTTL,
	} {
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if d <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	if c.Server.BaseURL != "" && !strings.HasPrefix(c.Server.BaseURL, "http://") && !strings.HasPrefix(c.Server.BaseURL, "https://") {
		return errors.New("server.base_url must start with http:// or https://")
	}
	if c.Catalog.Watch && c.Catalog.Path == "" {
		return errors.New("catalog.watch requires catalog.path")
	}
	if c.Database.Path == "" {
		return errors.New("database.path is required")
	}
	if c.Security.CSRFKey != "" && len(c.Security.CSRFKey) != 32 {
		return fmt.Errorf("security.csrf_key must be 32 bytes, got %d", len(c.Security.CSRFKey))
	}
	if c.API.RateLimitPerMinute < 0 {
		return errors.New("api.rate_limit_per_minute must not be negative")
	}
	switch c.Log.Format {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("log.format %q must be text, json or logfmt", c.Log.Format)
	}
	return nil
}

// duration parses a value already checked by Validate.
func duration(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	return d
}

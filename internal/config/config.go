// Package config provides YAML-based configuration loading for Hooksink,
// with environment variables taking precedence over file values.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level Hooksink configuration, loaded from hooksink.yaml
// and overridden by PORT, DATABASE_URL, WEBHOOK_SECRET and LOG_LEVEL.
type Config struct {
	Port          int          `yaml:"port"`
	DatabaseURL   string       `yaml:"database_url"`
	WebhookSecret string       `yaml:"webhook_secret"`
	LogLevel      string       `yaml:"log_level"`
	Digest        DigestConfig `yaml:"digest"`
}

// DigestConfig enables the optional periodic stats digest posted to a chat
// platform. The zero value disables it.
type DigestConfig struct {
	Platform  string `yaml:"platform"` // "slack" or "discord"
	Schedule  string `yaml:"schedule"` // 5-field cron expression
	Token     string `yaml:"token"`
	ChannelID string `yaml:"channel_id"`
}

// Enabled reports whether a digest platform is configured.
func (d DigestConfig) Enabled() bool {
	return d.Platform != ""
}

// Load reads a YAML config file from path and returns a validated Config.
// A missing file is not an error: the environment alone can carry the full
// configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		data = nil
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes, applies environment overrides and defaults,
// and returns a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse: %w", err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnv overrides file values with process environment values.
func (c *Config) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: PORT must be an integer, got %q", v)
		}
		c.Port = port
	}
	if v := strings.TrimSpace(os.Getenv("DATABASE_URL")); v != "" {
		c.DatabaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("WEBHOOK_SECRET")); v != "" {
		c.WebhookSecret = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		c.LogLevel = v
	}
	return nil
}

// applyDefaults fills in default values.
func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// validate checks that all required fields are present and consistent.
// The webhook secret is deliberately not required: without it the process
// still serves reads, /health/ready reports unready and /webhook refuses
// ingestion.
func (c *Config) validate() error {
	var errs []string
	if c.DatabaseURL == "" {
		errs = append(errs, "database_url is required (or set DATABASE_URL)")
	}
	if c.Digest.Enabled() {
		switch c.Digest.Platform {
		case "slack", "discord":
		default:
			errs = append(errs, fmt.Sprintf("digest.platform must be slack or discord, got %q", c.Digest.Platform))
		}
		if c.Digest.Schedule == "" {
			errs = append(errs, "digest.schedule is required when digest is enabled")
		}
		if c.Digest.Token == "" {
			errs = append(errs, "digest.token is required when digest is enabled")
		}
		if c.Digest.ChannelID == "" {
			errs = append(errs, "digest.channel_id is required when digest is enabled")
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

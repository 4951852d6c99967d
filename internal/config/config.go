// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizCard Contributors

// Package config loads credcheck settings from defaults, an optional YAML
// file and command-line flags, in that order of precedence.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/quizcard/credcheck/internal/logging"
	"github.com/quizcard/credcheck/internal/xdg"
)

// Environment variables consulted when the file and flags leave a value empty.
const (
	EnvDatabaseURL = "DATABASE_URL"
	EnvTokenSecret = "CREDCHECK_TOKEN_SECRET"
)

// MinTokenSecretLength is the shortest accepted HMAC secret, in bytes.
const MinTokenSecretLength = 32

// Config is the full service configuration.
type Config struct {
	HTTP     HTTPConfig     `koanf:"http"`
	Metrics  MetricsConfig  `koanf:"metrics"`
	Log      LogConfig      `koanf:"log"`
	Database DatabaseConfig `koanf:"database"`
	Policy   PolicyConfig   `koanf:"policy"`
	Name     NameConfig     `koanf:"name"`
	Token    TokenConfig    `koanf:"token"`

	// Locale is the default message language when a request does not ask for one.
	Locale string `koanf:"locale"`
}

// HTTPConfig configures the API listener.
type HTTPConfig struct {
	Addr string `koanf:"addr"`
}

// MetricsConfig configures the metrics/health listener. Empty Addr disables it.
type MetricsConfig struct {
	Addr string `koanf:"addr"`
}

// LogConfig configures logging.
type LogConfig struct {
	Format string `koanf:"format"`
	Level  string `koanf:"level"`
}

// DatabaseConfig configures PostgreSQL access.
type DatabaseConfig struct {
	URL            string        `koanf:"url"`
	ConnectTimeout time.Duration `koanf:"connect_timeout"`
}

// PolicyConfig points at an optional credential policy file.
type PolicyConfig struct {
	File string `koanf:"file"`
}

// NameConfig overrides the display-name maximum. Zero keeps the policy value.
type NameConfig struct {
	MaxLength int `koanf:"max_length"`
}

// TokenConfig configures session tokens.
type TokenConfig struct {
	Secret string        `koanf:"secret"`
	TTL    time.Duration `koanf:"ttl"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		HTTP:     HTTPConfig{Addr: "127.0.0.1:5000"},
		Metrics:  MetricsConfig{Addr: "127.0.0.1:9100"},
		Log:      LogConfig{Format: "json", Level: "info"},
		Database: DatabaseConfig{ConnectTimeout: 30 * time.Second},
		Token:    TokenConfig{TTL: 24 * time.Hour},
		Locale:   "en-US",
	}
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"http-addr":       "http.addr",
	"metrics-addr":    "metrics.addr",
	"log-format":      "log.format",
	"log-level":       "log.level",
	"database-url":    "database.url",
	"connect-timeout": "database.connect_timeout",
	"policy":          "policy.file",
	"name-max-length": "name.max_length",
	"token-ttl":       "token.ttl",
	"locale":          "locale",
}

// BindFlags registers the flags Load understands on fs.
func BindFlags(fs *pflag.FlagSet) {
	def := Default()
	fs.String("http-addr", def.HTTP.Addr, "API listen address")
	fs.String("metrics-addr", def.Metrics.Addr, "metrics/health HTTP address (empty = disabled)")
	fs.String("log-format", def.Log.Format, "log format (json or text)")
	fs.String("log-level", def.Log.Level, "log level (debug, info, warn, error)")
	fs.String("database-url", "", "PostgreSQL URL (default: $"+EnvDatabaseURL+")")
	fs.Duration("connect-timeout", def.Database.ConnectTimeout, "how long to retry the initial database connection")
	fs.String("policy", "", "credential policy file (default: XDG_CONFIG_HOME/credcheck/policy.yaml if present)")
	fs.Int("name-max-length", 0, "override the maximum display-name length")
	fs.Duration("token-ttl", def.Token.TTL, "session token lifetime")
	fs.String("locale", def.Locale, "default message locale")
}

// Load builds the configuration. path may be empty, in which case the XDG
// config file is read if it exists. fs may be nil.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if path == "" && xdg.Exists(xdg.ConfigFile()) {
		path = xdg.ConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.Code("CONFIG_LOAD_FAILED").With("path", path).Wrap(err)
		}
	}

	if fs != nil {
		provider := posflag.ProviderWithValue(fs, ".", k, func(key, value string) (string, any) {
			mapped, ok := flagKeys[key]
			if !ok {
				return "", nil
			}
			return mapped, value
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, oops.Code("CONFIG_LOAD_FAILED").With("operation", "load flags").Wrap(err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.Code("CONFIG_LOAD_FAILED").With("operation", "unmarshal").Wrap(err)
	}

	if cfg.Database.URL == "" {
		cfg.Database.URL = os.Getenv(EnvDatabaseURL)
	}
	if cfg.Token.Secret == "" {
		cfg.Token.Secret = os.Getenv(EnvTokenSecret)
	}
	if cfg.Policy.File == "" && xdg.Exists(xdg.PolicyFile()) {
		cfg.Policy.File = xdg.PolicyFile()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.HTTP.Addr) == "" {
		return oops.Code("CONFIG_INVALID").With("key", "http.addr").Errorf("http.addr is required")
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		return oops.Code("CONFIG_INVALID").
			With("key", "log.format").
			Errorf("log.format must be 'json' or 'text', got %q", c.Log.Format)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return oops.Code("CONFIG_INVALID").
			With("key", "log.level").
			Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	if c.Name.MaxLength < 0 {
		return oops.Code("CONFIG_INVALID").
			With("key", "name.max_length").
			Errorf("name.max_length must not be negative, got %d", c.Name.MaxLength)
	}
	if c.Token.Secret != "" && len(c.Token.Secret) < MinTokenSecretLength {
		return oops.Code("CONFIG_INVALID").
			With("key", "token.secret").
			Errorf("token.secret must be at least %d bytes", MinTokenSecretLength)
	}
	if c.Token.TTL <= 0 {
		return oops.Code("CONFIG_INVALID").With("key", "token.ttl").Errorf("token.ttl must be positive")
	}
	if c.Database.ConnectTimeout <= 0 {
		return oops.Code("CONFIG_INVALID").
			With("key", "database.connect_timeout").
			Errorf("database.connect_timeout must be positive")
	}
	return nil
}

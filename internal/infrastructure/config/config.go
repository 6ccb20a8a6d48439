package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Settings  SettingsConfig
	Flags     FlagsConfig
	Host      HostConfig
	Logging   LogConfig
	RateLimit RateLimitConfig `split_words:"true"`
}

// ServerConfig holds HTTP inspection server configuration.
type ServerConfig struct {
	Port string `default:"8090"`
	Host string `default:"127.0.0.1"`
}

// SettingsConfig locates persisted settings files.
type SettingsConfig struct {
	File string
	Glob string
}

// FlagsConfig locates the feature flag snapshot.
type FlagsConfig struct {
	File    string
	URL     string
	Timeout time.Duration `default:"5s"`
	Retries int           `default:"2"`
}

// HostConfig describes the hosting process.
type HostConfig struct {
	RestrictedSignal string `split_words:"true" default:"LSP_RESTRICTED_HOST"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `default:"info"`
	Development bool   `default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `split_words:"true" default:"50"`
	Burst             int  `default:"100"`
	Enabled           bool `default:"true"`
}

// Prefix is prepended to every variable name. Names follow the struct path,
// e.g. HOSTCONFIG_SERVER_PORT or HOSTCONFIG_RATE_LIMIT_BURST.
const Prefix = "HOSTCONFIG"

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8090",
			Host: "127.0.0.1",
		},
		Flags: FlagsConfig{
			Timeout: 5 * time.Second,
			Retries: 2,
		},
		Host: HostConfig{
			RestrictedSignal: "LSP_RESTRICTED_HOST",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 50,
			Burst:             100,
			Enabled:           true,
		},
	}
}

// Addr returns host:port for the HTTP server
func (c ServerConfig) Addr() string {
	return c.Host + ":" + c.Port
}

package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

const (
	// ModePrint renders once to stdout and exits
	ModePrint = "print"

	// ModeServe serves the rendered document over HTTP
	ModeServe = "serve"
)

// Config holds all configuration for the plantings process
type Config struct {
	// Run mode
	Mode string `env:"MODE" envDefault:"print"`

	// HTTP configuration
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// Redis configuration (publishing is disabled when RedisAddr is empty)
	RedisAddr     string `env:"REDIS_ADDR" envDefault:""`
	RedisPassword string `env:"REDIS_PASS" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	PublishStream string `env:"PUBLISH_STREAM" envDefault:"plantings.rendered"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Mode != ModePrint && c.Mode != ModeServe {
		return fmt.Errorf("MODE must be one of: %s, %s", ModePrint, ModeServe)
	}

	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}

	if c.RedisDB < 0 {
		return fmt.Errorf("REDIS_DB must be non-negative")
	}

	if c.PublishEnabled() && c.PublishStream == "" {
		return fmt.Errorf("PUBLISH_STREAM is required when REDIS_ADDR is set")
	}

	if !isValidLogLevel(c.LogLevel) {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error")
	}

	return nil
}

// PublishEnabled reports whether rendered documents are published to Redis
func (c *Config) PublishEnabled() bool {
	return c.RedisAddr != ""
}

// isValidLogLevel checks if the log level is valid
func isValidLogLevel(level string) bool {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	return validLevels[level]
}

// String returns a string representation of the config (without sensitive data)
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Mode=%s, HTTPPort=%d, RedisAddr=%s, RedisDB=%d, PublishStream=%s, LogLevel=%s}",
		c.Mode,
		c.HTTPPort,
		c.RedisAddr,
		c.RedisDB,
		c.PublishStream,
		c.LogLevel,
	)
}

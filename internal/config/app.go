// Package config provides environment-based configuration for the service:
// HTTP server settings, database connection, JWT signing and password hashing.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// AppConfig holds settings for the HTTP server and its database connection.
type AppConfig struct {
	Port            int
	DatabaseURL     string
	ShutdownTimeout time.Duration
}

// NewAppConfig creates an application configuration from environment
// variables. It reads PORT (default: 8080), DATABASE_URL (required) and
// SHUTDOWN_TIMEOUT_SECONDS (default: 10).
func NewAppConfig() (*AppConfig, error) {
	port, err := envInt("PORT", 8080)
	if err != nil {
		return nil, err
	}

	shutdownSeconds, err := envInt("SHUTDOWN_TIMEOUT_SECONDS", 10)
	if err != nil {
		return nil, err
	}

	config := &AppConfig{
		Port:            port,
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		ShutdownTimeout: time.Duration(shutdownSeconds) * time.Second,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *AppConfig) normalize() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required but not set")
	}
	if c.ShutdownTimeout < time.Second {
		return fmt.Errorf("SHUTDOWN_TIMEOUT_SECONDS must be at least 1, got: %s", c.ShutdownTimeout)
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *AppConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// envInt reads an integer environment variable, falling back to a default
// when unset.
func envInt(name string, fallback int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", name, err)
	}
	return value, nil
}

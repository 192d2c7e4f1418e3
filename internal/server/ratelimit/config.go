package ratelimit

import (
	"os"
	"strconv"
	"time"
)

// Config holds rate limiting configuration.
type Config struct {
	Enabled       bool
	DefaultLimit  int
	DefaultWindow time.Duration
	Rules         []Rule
}

// LoadConfig loads rate limiting configuration from environment variables.
// RATE_LIMIT_ENABLED (default: true) and RATE_LIMIT_DEFAULT_LIMIT
// (default: 600 per minute) tune the global budget; route rules are fixed.
func LoadConfig() *Config {
	if !envBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:       true,
		DefaultLimit:  envInt("RATE_LIMIT_DEFAULT_LIMIT", 600),
		DefaultWindow: time.Minute,
		Rules:         defaultRules(),
	}
}

// defaultRules returns the route-specific budgets. Credential endpoints get
// the strictest limits; submission and ingestion endpoints sit in between.
func defaultRules() []Rule {
	return []Rule{
		{Path: "/auth/", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5},
		{Path: "/resumes", Method: "POST", Limit: 30, Window: time.Minute, Burst: 10},
		{Path: "/jobs", Method: "POST", Limit: 60, Window: time.Minute, Burst: 20},
		{Path: "/applications", Method: "POST", Limit: 60, Window: time.Minute, Burst: 20},
	}
}

func envBool(name string, fallback bool) bool {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}

func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

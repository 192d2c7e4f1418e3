package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiter_BurstThenRefuse(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		Rules: []Rule{
			{Path: "/auth/", Method: "POST", Limit: 10, Window: time.Minute, Burst: 3},
		},
	})

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow("1.2.3.4", "/auth/login", "POST"), "request %d within burst", i)
	}
	assert.False(t, limiter.Allow("1.2.3.4", "/auth/login", "POST"), "burst exhausted")
}

func TestLimiter_ClientsIsolated(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		Rules: []Rule{
			{Path: "/auth/", Method: "POST", Limit: 10, Window: time.Minute, Burst: 1},
		},
	})

	assert.True(t, limiter.Allow("1.1.1.1", "/auth/login", "POST"))
	assert.False(t, limiter.Allow("1.1.1.1", "/auth/login", "POST"))
	assert.True(t, limiter.Allow("2.2.2.2", "/auth/login", "POST"), "second client has its own bucket")
}

func TestLimiter_MethodScoped(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		Rules: []Rule{
			{Path: "/jobs", Method: "POST", Limit: 10, Window: time.Minute, Burst: 1},
		},
	})

	assert.True(t, limiter.Allow("1.1.1.1", "/jobs", "POST"))
	assert.False(t, limiter.Allow("1.1.1.1", "/jobs", "POST"))
	// GET falls through to the default rule
	assert.True(t, limiter.Allow("1.1.1.1", "/jobs", "GET"))
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})

	for i := 0; i < 100; i++ {
		assert.True(t, limiter.Allow("1.1.1.1", "/auth/login", "POST"))
	}
}

func TestLimiter_Refills(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		Rules: []Rule{
			// 100 tokens/second so the refill is observable in a short sleep
			{Path: "/auth/", Method: "POST", Limit: 100, Window: time.Second, Burst: 1},
		},
	})

	assert.True(t, limiter.Allow("1.1.1.1", "/auth/login", "POST"))
	assert.False(t, limiter.Allow("1.1.1.1", "/auth/login", "POST"))

	time.Sleep(50 * time.Millisecond)
	assert.True(t, limiter.Allow("1.1.1.1", "/auth/login", "POST"), "bucket should refill")
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "")

	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 600, cfg.DefaultLimit)
	assert.NotEmpty(t, cfg.Rules)
}

func TestLoadConfig_Disabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg := LoadConfig()
	assert.False(t, cfg.Enabled)
}

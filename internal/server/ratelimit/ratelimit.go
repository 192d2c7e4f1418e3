// Package ratelimit provides per-client request throttling using the token
// bucket algorithm.
package ratelimit

import (
	"strings"
	"sync"
	"time"
)

// bucket is a single client's token bucket. Tokens refill at a steady rate
// up to the burst capacity.
type bucket struct {
	capacity   int
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
	mu         sync.Mutex
}

func newBucket(capacity int, refillRate float64) *bucket {
	return &bucket{
		capacity:   capacity,
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

func (b *bucket) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens = min(float64(b.capacity), b.tokens+now.Sub(b.lastRefill).Seconds()*b.refillRate)
	b.lastRefill = now

	if b.tokens >= 1.0 {
		b.tokens -= 1.0
		return true
	}
	return false
}

// Rule limits one route group. Path matches by prefix.
type Rule struct {
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int
}

// Limiter throttles clients per route group. A client that exceeds a rule's
// budget is refused until the bucket refills.
type Limiter struct {
	config  *Config
	buckets map[string]*bucket
	mu      sync.Mutex
}

// NewLimiter creates a rate limiter with the given configuration.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = LoadConfig()
	}
	return &Limiter{
		config:  config,
		buckets: make(map[string]*bucket),
	}
}

// Allow reports whether the request from clientID to the given route is
// within budget. When disabled, every request passes.
func (l *Limiter) Allow(clientID, path, method string) bool {
	if !l.config.Enabled {
		return true
	}

	rule := l.match(path, method)
	key := clientID + "|" + rule.Path + "|" + rule.Method

	l.mu.Lock()
	b, ok := l.buckets[key]
	if !ok {
		burst := rule.Burst
		if burst == 0 {
			burst = rule.Limit
		}
		b = newBucket(burst, float64(rule.Limit)/rule.Window.Seconds())
		l.buckets[key] = b
	}
	l.mu.Unlock()

	return b.allow()
}

// match finds the first rule whose path prefix and method cover the request,
// falling back to the default rule.
func (l *Limiter) match(path, method string) Rule {
	for _, rule := range l.config.Rules {
		if rule.Method != "" && rule.Method != method {
			continue
		}
		if strings.HasPrefix(path, rule.Path) {
			return rule
		}
	}
	return Rule{Path: "", Method: "", Limit: l.config.DefaultLimit, Window: l.config.DefaultWindow}
}

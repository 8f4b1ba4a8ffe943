package config

import "time"

// RateLimitConfig parameterizes the Redis token bucket guarding the login
// and contact form endpoints.
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	KeyStrategy    string // ip, route, ip_route, user, ip_user_route
	Prefix         string
}

func loadRateLimit(e *source) RateLimitConfig {
	rl := RateLimitConfig{
		Enabled:        e.boolean("RATE_LIMIT_ENABLED", true),
		Capacity:       e.number("RATE_LIMIT_CAPACITY", 10),
		RefillTokens:   e.number("RATE_LIMIT_REFILL_TOKENS", 1),
		RefillInterval: e.dur("RATE_LIMIT_REFILL_INTERVAL", 6*time.Second),
		TTL:            e.dur("RATE_LIMIT_TTL", 10*time.Minute),
		KeyStrategy:    e.str("RATE_LIMIT_KEY_STRATEGY", "ip_route"),
		Prefix:         e.str("RATE_LIMIT_PREFIX", "rl"),
	}
	if every := e.dur("RATE_LIMIT_REFILL_EVERY", 0); every > 0 {
		rl.RefillTokens = 1
		rl.RefillInterval = every
	}
	if rl.Capacity < 1 {
		rl.Capacity = 1
	}
	if rl.RefillTokens < 1 {
		rl.RefillTokens = 1
	}
	if rl.RefillInterval <= 0 {
		rl.RefillInterval = time.Second
	}
	if minTTL := 5 * rl.RefillInterval; rl.TTL < minTTL {
		rl.TTL = minTTL
	}
	return rl
}

package config

import (
	"testing"
	"time"
)

func TestLoadRateLimitConfigDefaults(t *testing.T) {
	cfg := LoadRateLimitConfig()
	if !cfg.Enabled {
		t.Error("limiter disabled by default")
	}
	if cfg.Capacity != 10 || cfg.RefillTokens != 1 {
		t.Errorf("capacity/refill = %d/%d, want 10/1", cfg.Capacity, cfg.RefillTokens)
	}
	if cfg.RefillInterval != 5*time.Second {
		t.Errorf("refill interval = %v", cfg.RefillInterval)
	}
	if cfg.TTL < 5*cfg.RefillInterval {
		t.Errorf("ttl %v shorter than five refill intervals", cfg.TTL)
	}
}

func TestLoadRateLimitConfigFloors(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "-3")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "0s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	if cfg.Capacity != 1 || cfg.RefillTokens != 1 {
		t.Errorf("capacity/refill = %d/%d, want floors of 1", cfg.Capacity, cfg.RefillTokens)
	}
	if cfg.RefillInterval != time.Second {
		t.Errorf("refill interval = %v, want 1s floor", cfg.RefillInterval)
	}
	if cfg.TTL != 5*time.Second {
		t.Errorf("ttl = %v, want raised to five intervals", cfg.TTL)
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("X_STR", "value")
	t.Setenv("X_BOOL", "off")
	t.Setenv("X_INT", "42")
	t.Setenv("X_INT_BAD", "abc")
	t.Setenv("X_DUR", "90s")

	if got := envStr("X_STR", "d"); got != "value" {
		t.Errorf("envStr = %q", got)
	}
	if got := envStr("X_MISSING", "d"); got != "d" {
		t.Errorf("envStr default = %q", got)
	}
	if envBool("X_BOOL", true) {
		t.Error("envBool did not parse off")
	}
	if got := envInt("X_INT", 0); got != 42 {
		t.Errorf("envInt = %d", got)
	}
	if got := envInt("X_INT_BAD", 7); got != 7 {
		t.Errorf("envInt fallback = %d", got)
	}
	if got := envDur("X_DUR", 0); got != 90*time.Second {
		t.Errorf("envDur = %v", got)
	}
}

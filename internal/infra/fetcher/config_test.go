package fetcher_test

import (
	"testing"
	"time"

	"news-digest/internal/infra/fetcher"
)

func TestDefaultConfig(t *testing.T) {
	cfg := fetcher.DefaultConfig()

	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected Timeout=30s, got %v", cfg.Timeout)
	}
	if cfg.MaxBodySize != 10*1024*1024 {
		t.Errorf("expected MaxBodySize=10MB, got %d", cfg.MaxBodySize)
	}
	if cfg.MaxRedirects != 5 {
		t.Errorf("expected MaxRedirects=5, got %d", cfg.MaxRedirects)
	}
	if !cfg.DenyPrivateIPs {
		t.Error("expected DenyPrivateIPs=true by default (security)")
	}
	if cfg.MaxAttempts != 1 {
		t.Errorf("expected MaxAttempts=1, got %d", cfg.MaxAttempts)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid, got error: %v", err)
	}
}

func TestConfigValidate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*fetcher.Config)
	}{
		{name: "zero timeout", modify: func(c *fetcher.Config) { c.Timeout = 0 }},
		{name: "body too small", modify: func(c *fetcher.Config) { c.MaxBodySize = 512 }},
		{name: "body too large", modify: func(c *fetcher.Config) { c.MaxBodySize = 200 * 1024 * 1024 }},
		{name: "negative redirects", modify: func(c *fetcher.Config) { c.MaxRedirects = -1 }},
		{name: "too many redirects", modify: func(c *fetcher.Config) { c.MaxRedirects = 11 }},
		{name: "zero attempts", modify: func(c *fetcher.Config) { c.MaxAttempts = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := fetcher.DefaultConfig()
			tt.modify(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

package fetcher

import (
	"fmt"
	"time"
)

// Body size bounds accepted by Validate.
const (
	minBodySize  = 1 << 10   // 1KB
	maxBodyLimit = 100 << 20 // 100MB
	maxRedirects = 10
)

// Config controls how pages are downloaded by the direct backend.
type Config struct {
	// Timeout bounds one HTTP request, redirects included.
	Timeout time.Duration
	// MaxBodySize caps the bytes read from a response, whatever Content-Length says.
	MaxBodySize int64
	// MaxRedirects caps redirects; every hop passes the SSRF check again.
	MaxRedirects int
	// DenyPrivateIPs rejects loopback, private and link-local targets.
	DenyPrivateIPs bool
	// UserAgent is sent with every request.
	UserAgent string
	// MaxAttempts is the number of attempts per page. 1 disables retry.
	MaxAttempts int
}

// DefaultConfig returns the settings used unless the CLI overrides them.
func DefaultConfig() Config {
	return Config{
		Timeout:        30 * time.Second,
		MaxBodySize:    10 << 20,
		MaxRedirects:   5,
		DenyPrivateIPs: true,
		UserAgent:      "NewsDigestBot/1.0",
		MaxAttempts:    1,
	}
}

// Validate rejects settings that would disable a safety limit.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.MaxBodySize < minBodySize || c.MaxBodySize > maxBodyLimit {
		return fmt.Errorf("max body size must be between %d and %d bytes, got %d", minBodySize, maxBodyLimit, c.MaxBodySize)
	}
	if c.MaxRedirects < 0 || c.MaxRedirects > maxRedirects {
		return fmt.Errorf("max redirects must be between 0 and %d, got %d", maxRedirects, c.MaxRedirects)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("max attempts must be at least 1, got %d", c.MaxAttempts)
	}
	return nil
}

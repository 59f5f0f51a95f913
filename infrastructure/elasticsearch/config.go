package elasticsearch

import (
	"time"

	"github.com/Sahil-memane/urban-resource-harmony-sub000/infrastructure/retry"
)

// Config holds Elasticsearch client configuration.
type Config struct {
	URL      string
	Username string
	Password string
	APIKey   string
	// MaxRetries is passed to the transport for individual requests.
	MaxRetries  int
	PingTimeout time.Duration
	// RetryConfig drives connection verification at startup.
	RetryConfig *retry.Config
}

// SetDefaults applies default values to unset fields.
func (c *Config) SetDefaults() {
	if c.URL == "" {
		c.URL = "http://localhost:9200"
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
	if c.PingTimeout == 0 {
		c.PingTimeout = 5 * time.Second
	}
	if c.RetryConfig == nil {
		c.RetryConfig = &retry.Config{
			MaxAttempts:  3,
			InitialDelay: time.Second,
			MaxDelay:     5 * time.Second,
			Multiplier:   2.0,
		}
	}
}

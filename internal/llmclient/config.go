package llmclient

import (
	"strings"
	"time"
)

// Providers.
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Defaults.
const (
	DefaultTemperature      = 0.1
	DefaultMaxOutputTokens  = 10
	DefaultTimeout          = 10 * time.Second
	DefaultRequestsPerSec   = 5.0
	DefaultBurst            = 10
	DefaultBreakerFailures  = 5
	DefaultBreakerOpenDelay = 30 * time.Second
)

// Default model and base URL per provider.
var providerDefaults = map[string]struct{ model, baseURL string }{
	ProviderGemini:    {model: "gemini-2.0-flash", baseURL: "https://generativelanguage.googleapis.com/v1beta"},
	ProviderOpenAI:    {model: "gpt-4o-mini", baseURL: "https://api.openai.com/v1/"},
	ProviderAnthropic: {model: "claude-3-5-haiku-latest", baseURL: "https://api.anthropic.com/"},
}

// Config holds model provider settings.
type Config struct {
	Provider        string        `env:"LLM_PROVIDER"          yaml:"provider"`
	APIKey          string        `env:"LLM_API_KEY"           yaml:"api_key"`
	Model           string        `env:"LLM_MODEL"             yaml:"model"`
	BaseURL         string        `env:"LLM_BASE_URL"          yaml:"base_url"`
	Temperature     *float64      `env:"LLM_TEMPERATURE"       yaml:"temperature"`
	MaxOutputTokens int           `env:"LLM_MAX_OUTPUT_TOKENS" yaml:"max_output_tokens"`
	Timeout         time.Duration `env:"LLM_TIMEOUT"           yaml:"timeout"`

	// RequestsPerSecond and Burst size the token bucket in front of the provider.
	RequestsPerSecond float64 `env:"LLM_REQUESTS_PER_SECOND" yaml:"requests_per_second"`
	Burst             int     `env:"LLM_BURST"               yaml:"burst"`

	BreakerFailures  int           `env:"LLM_BREAKER_FAILURES"   yaml:"breaker_failures"`
	BreakerOpenDelay time.Duration `env:"LLM_BREAKER_OPEN_DELAY" yaml:"breaker_open_delay"`
}

// SetDefaults fills zero values, using the provider's model and base URL.
// The provider name is lowercased first. An unset temperature becomes
// DefaultTemperature; an explicit 0 is kept.
func (c *Config) SetDefaults() {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	if c.Provider == "" {
		c.Provider = ProviderGemini
	}
	if d, ok := providerDefaults[c.Provider]; ok {
		if c.Model == "" {
			c.Model = d.model
		}
		if c.BaseURL == "" {
			c.BaseURL = d.baseURL
		}
	}
	if c.Temperature == nil {
		t := DefaultTemperature
		c.Temperature = &t
	}
	if c.MaxOutputTokens == 0 {
		c.MaxOutputTokens = DefaultMaxOutputTokens
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RequestsPerSecond == 0 {
		c.RequestsPerSecond = DefaultRequestsPerSec
	}
	if c.Burst == 0 {
		c.Burst = DefaultBurst
	}
	if c.BreakerFailures == 0 {
		c.BreakerFailures = DefaultBreakerFailures
	}
	if c.BreakerOpenDelay == 0 {
		c.BreakerOpenDelay = DefaultBreakerOpenDelay
	}
}

// TemperatureValue returns the configured temperature or DefaultTemperature.
func (c Config) TemperatureValue() float64 {
	if c.Temperature == nil {
		return DefaultTemperature
	}
	return *c.Temperature
}

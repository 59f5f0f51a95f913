// Package llmclient adapts hosted text-generation APIs to the priority
// classifier's model interface.
package llmclient

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotConfigured is returned by New when no API key is set.
	ErrNotConfigured = errors.New("llm client is not configured")
	// ErrUnknownProvider is returned by New for an unsupported provider name.
	ErrUnknownProvider = errors.New("unknown llm provider")
	// ErrEmptyResponse is returned when the provider answered without text.
	ErrEmptyResponse = errors.New("llm returned no text")
)

// Generator produces a completion for a single prompt. One call is one
// attempt: implementations do not retry.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

// HealthChecker is implemented by generators that can probe their endpoint.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// New creates the generator for cfg.Provider. cfg should already have
// defaults applied.
func New(cfg Config) (Generator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNotConfigured
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case ProviderGemini, "":
		return newGemini(cfg), nil
	case ProviderOpenAI:
		return newOpenAI(cfg), nil
	case ProviderAnthropic:
		return newAnthropic(cfg), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}
}

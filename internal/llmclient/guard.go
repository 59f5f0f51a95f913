package llmclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/Sahil-memane/urban-resource-harmony-sub000/infrastructure/circuitbreaker"
	infralogger "github.com/Sahil-memane/urban-resource-harmony-sub000/infrastructure/logger"
	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/priority"
)

// ErrRateLimited is returned when the local token bucket is empty. The call
// is not queued: the classifier falls back to its severity score instead.
var ErrRateLimited = errors.New("llm rate limit exceeded")

// Guard bounds every call to a Generator with a timeout, a token bucket and
// a circuit breaker. It implements priority.Model.
type Guard struct {
	gen     Generator
	limiter *rate.Limiter
	breaker *circuitbreaker.Breaker
	timeout time.Duration
	logger  infralogger.Logger
}

// NewGuard wraps gen using cfg's timeout, rate and breaker settings.
func NewGuard(gen Generator, cfg Config, log infralogger.Logger) *Guard {
	cfg.SetDefaults()
	if log == nil {
		log = infralogger.NewNop()
	}

	g := &Guard{
		gen:     gen,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		timeout: cfg.Timeout,
		logger:  log.With(infralogger.String("provider", gen.Name())),
	}
	g.breaker = circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.BreakerFailures,
		Timeout:          cfg.BreakerOpenDelay,
		OnStateChange: func(from, to circuitbreaker.State) {
			g.logger.Warn("LLM circuit breaker state changed",
				infralogger.String("from", from.String()),
				infralogger.String("to", to.String()),
			)
		},
	})
	return g
}

// Consult runs one guarded generation.
func (g *Guard) Consult(ctx context.Context, prompt string) priority.ModelOutcome {
	text, err := g.Generate(ctx, prompt)
	if err != nil {
		return priority.Failed(err)
	}
	return priority.Succeeded(text)
}

// Generate calls the wrapped generator unless the limiter or breaker
// rejects the call.
func (g *Guard) Generate(ctx context.Context, prompt string) (string, error) {
	if !g.limiter.Allow() {
		return "", ErrRateLimited
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var text string
	err := g.breaker.Execute(ctx, func() error {
		var genErr error
		text, genErr = g.gen.Generate(ctx, prompt)
		return genErr
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", g.gen.Name(), err)
	}
	return text, nil
}

// Name returns the wrapped provider name.
func (g *Guard) Name() string { return g.gen.Name() }

// BreakerState reports the breaker state for readiness checks.
func (g *Guard) BreakerState() circuitbreaker.State { return g.breaker.State() }

// BreakerOpen reports whether calls are currently being rejected.
func (g *Guard) BreakerOpen() bool { return g.breaker.State() == circuitbreaker.StateOpen }

// Health probes the provider when it supports probing; otherwise it reports
// the breaker state.
func (g *Guard) Health(ctx context.Context) error {
	if hc, ok := g.gen.(HealthChecker); ok {
		return hc.Health(ctx)
	}
	if g.BreakerOpen() {
		return circuitbreaker.ErrCircuitOpen
	}
	return nil
}

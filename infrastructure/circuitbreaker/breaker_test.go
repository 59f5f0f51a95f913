package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func failing() error { return errBoom }
func passing() error { return nil }

func TestBreaker_OpensAfterThreshold(t *testing.T) {
	t.Parallel()

	b := New(Config{FailureThreshold: 2, Timeout: time.Minute})
	ctx := context.Background()

	require.ErrorIs(t, b.Execute(ctx, failing), errBoom)
	assert.Equal(t, StateClosed, b.State())

	require.ErrorIs(t, b.Execute(ctx, failing), errBoom)
	assert.Equal(t, StateOpen, b.State())

	called := false
	err := b.Execute(ctx, func() error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called, "open breaker must not call through")
}

func TestBreaker_SuccessResetsFailureCount(t *testing.T) {
	t.Parallel()

	b := New(Config{FailureThreshold: 2})
	ctx := context.Background()

	_ = b.Execute(ctx, failing)
	_ = b.Execute(ctx, passing)
	_ = b.Execute(ctx, failing)

	assert.Equal(t, StateClosed, b.State())
}

func TestBreaker_HalfOpenProbe(t *testing.T) {
	t.Parallel()

	now := time.Now()
	var transitions []State
	b := New(Config{
		FailureThreshold: 1,
		Timeout:          time.Second,
		OnStateChange:    func(_, to State) { transitions = append(transitions, to) },
	})
	b.now = func() time.Time { return now }
	ctx := context.Background()

	_ = b.Execute(ctx, failing)
	require.Equal(t, StateOpen, b.State())

	now = now.Add(2 * time.Second)
	require.NoError(t, b.Execute(ctx, passing))
	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, []State{StateOpen, StateHalfOpen, StateClosed}, transitions)
}

func TestBreaker_HalfOpenFailureReopens(t *testing.T) {
	t.Parallel()

	now := time.Now()
	b := New(Config{FailureThreshold: 1, Timeout: time.Second})
	b.now = func() time.Time { return now }
	ctx := context.Background()

	_ = b.Execute(ctx, failing)
	now = now.Add(2 * time.Second)
	_ = b.Execute(ctx, failing)

	assert.Equal(t, StateOpen, b.State())
}

func TestBreaker_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(Config{}).Execute(ctx, passing)
	require.ErrorIs(t, err, context.Canceled)
}

func TestState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "unknown", State(42).String())
}

package logger_test

import (
	"context"
	"testing"

	"github.com/Sahil-memane/urban-resource-harmony-sub000/infrastructure/logger"
)

func TestWithContext_FromContext_RoundTrip(t *testing.T) {
	t.Parallel()

	l := mustTestLogger(t)
	ctx := logger.WithContext(context.Background(), l)

	if got := logger.FromContext(ctx); got != l {
		t.Errorf("FromContext returned %v, want the stored logger", got)
	}
}

func TestFromContext_FallbackIsSharedAndUsable(t *testing.T) {
	t.Parallel()

	a := logger.FromContext(context.Background())
	b := logger.FromContext(context.Background())
	if a == nil || b == nil {
		t.Fatal("expected non-nil fallback logger")
	}
	if a != b {
		t.Error("fallback logger should be a singleton")
	}

	a.Warn("fallback works", logger.String("key", "value"))
}

func TestNewForService_AddsServiceField(t *testing.T) {
	t.Parallel()

	l, err := logger.NewForService("complaints", logger.Config{Level: "error", OutputPaths: []string{"stderr"}})
	if err != nil {
		t.Fatalf("NewForService: %v", err)
	}
	if l == nil {
		t.Fatal("expected logger")
	}
	l.Debug("filtered at error level")
}

func mustTestLogger(t *testing.T) logger.Logger {
	t.Helper()

	l, err := logger.New(logger.Config{
		Level:       "warn",
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		t.Fatalf("failed to create test logger: %v", err)
	}
	return l
}

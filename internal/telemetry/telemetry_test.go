package telemetry_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/domain"
	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/priority"
	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/telemetry"
)

func scrape(t *testing.T, p *telemetry.Provider) string {
	t.Helper()

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}

func TestNewProvider(t *testing.T) {
	provider := telemetry.NewProvider()
	if provider.Tracer == nil {
		t.Error("expected non-nil tracer")
	}
	if provider.Metrics == nil {
		t.Error("expected non-nil metrics")
	}

	// A second provider must not collide with the first.
	_ = telemetry.NewProvider()
}

func TestProvider_RecordsClassifications(t *testing.T) {
	provider := telemetry.NewProvider()

	provider.RecordClassification(domain.PriorityHigh, priority.StageKeywords, 2*time.Millisecond)
	provider.RecordClassification(domain.PriorityHigh, priority.StageKeywords, 3*time.Millisecond)
	provider.RecordModelCall(priority.ModelOutcomeError, time.Second)
	provider.RecordComplaintCreated(domain.PriorityLow)
	provider.RecordSideEffectFailure("events")

	body := scrape(t, provider)
	for _, want := range []string{
		`complaint_priority_classifications_total{priority="high",stage="keywords"} 2`,
		`complaint_priority_model_calls_total{outcome="error"} 1`,
		`complaint_priority_complaints_created_total{priority="low"} 1`,
		`complaint_priority_side_effect_failures_total{sink="events"} 1`,
		`complaint_priority_classification_duration_seconds_count 2`,
		`go_goroutines`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

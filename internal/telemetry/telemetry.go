// Package telemetry provides Prometheus metrics and OpenTelemetry tracing
// for the complaint priority service.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/domain"
	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/priority"
)

const (
	serviceName = "complaint-priority"
	namespace   = "complaint_priority"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	Classifications        *prometheus.CounterVec
	ClassificationDuration prometheus.Histogram
	ModelCalls             *prometheus.CounterVec
	ModelCallDuration      prometheus.Histogram
	ComplaintsCreated      *prometheus.CounterVec
	SideEffectFailures     *prometheus.CounterVec
}

// Provider wraps telemetry providers. It implements priority.Recorder.
type Provider struct {
	Tracer   trace.Tracer
	Metrics  *Metrics
	registry *prometheus.Registry
}

var _ priority.Recorder = (*Provider)(nil)

// NewProvider registers all metrics on a fresh registry.
func NewProvider() *Provider {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Provider{
		Tracer:   otel.Tracer(serviceName),
		Metrics:  initMetrics(promauto.With(reg)),
		registry: reg,
	}
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func (p *Provider) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

func initMetrics(f promauto.Factory) *Metrics {
	return &Metrics{
		Classifications: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classifications_total",
			Help:      "Priority decisions by resulting priority and deciding stage",
		}, []string{"priority", "stage"}),
		ClassificationDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "classification_duration_seconds",
			Help:      "End-to-end time to classify one complaint",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		ModelCalls: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_calls_total",
			Help:      "External model consultations by outcome",
		}, []string{"outcome"}),
		ModelCallDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "model_call_duration_seconds",
			Help:      "Latency of external model consultations",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}),
		ComplaintsCreated: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "complaints_created_total",
			Help:      "Complaints stored, by priority",
		}, []string{"priority"}),
		SideEffectFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "side_effect_failures_total",
			Help:      "Failed best-effort writes after a complaint was stored (index, event)",
		}, []string{"sink"}),
	}
}

// RecordClassification records one priority decision.
func (p *Provider) RecordClassification(pr domain.Priority, stage priority.Stage, d time.Duration) {
	p.Metrics.Classifications.WithLabelValues(pr.String(), string(stage)).Inc()
	p.Metrics.ClassificationDuration.Observe(d.Seconds())
}

// RecordModelCall records one model consultation.
func (p *Provider) RecordModelCall(outcome string, d time.Duration) {
	p.Metrics.ModelCalls.WithLabelValues(outcome).Inc()
	p.Metrics.ModelCallDuration.Observe(d.Seconds())
}

// RecordComplaintCreated counts a stored complaint.
func (p *Provider) RecordComplaintCreated(pr domain.Priority) {
	p.Metrics.ComplaintsCreated.WithLabelValues(pr.String()).Inc()
}

// RecordSideEffectFailure counts a failed index or event write.
func (p *Provider) RecordSideEffectFailure(sink string) {
	p.Metrics.SideEffectFailures.WithLabelValues(sink).Inc()
}

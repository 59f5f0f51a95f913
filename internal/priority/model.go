package priority

import (
	"context"
	"time"

	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/domain"
)

// Model is the external text-generation service consulted for borderline
// complaints. Implementations report failure through the outcome rather
// than panicking.
type Model interface {
	Consult(ctx context.Context, prompt string) ModelOutcome
}

// ModelOutcome is either a completion or the reason there is none.
type ModelOutcome struct {
	Text string
	Err  error
}

// Succeeded wraps a completion.
func Succeeded(text string) ModelOutcome { return ModelOutcome{Text: text} }

// Failed wraps a failure reason.
func Failed(err error) ModelOutcome { return ModelOutcome{Err: err} }

// OK reports whether the model produced a completion.
func (o ModelOutcome) OK() bool { return o.Err == nil }

// ModelFunc adapts a function to Model.
type ModelFunc func(ctx context.Context, prompt string) ModelOutcome

func (f ModelFunc) Consult(ctx context.Context, prompt string) ModelOutcome { return f(ctx, prompt) }

// Model call outcomes reported to the Recorder.
const (
	ModelOutcomeOK      = "ok"
	ModelOutcomeError   = "error"
	ModelOutcomeInvalid = "invalid_response"
)

// Recorder receives classification measurements.
type Recorder interface {
	RecordClassification(p domain.Priority, stage Stage, d time.Duration)
	RecordModelCall(outcome string, d time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) RecordClassification(domain.Priority, Stage, time.Duration) {}
func (nopRecorder) RecordModelCall(string, time.Duration)                      {}

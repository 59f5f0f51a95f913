// Package priority assigns low, medium or high priority to citizen
// complaints. Deterministic rules settle most complaints; borderline ones are
// referred to an external model whose answer is bounded by override rules.
package priority

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/domain"
	infralogger "github.com/Sahil-memane/urban-resource-harmony-sub000/infrastructure/logger"
)

// DefaultModelTimeout bounds the single model call.
const DefaultModelTimeout = 10 * time.Second

const maxLoggedResponse = 64

var (
	// ErrModelNotConfigured is reported when a complaint needs the model but
	// no model is configured.
	ErrModelNotConfigured = errors.New("priority model is not configured")
	// ErrInternal is reported when classification panicked.
	ErrInternal = errors.New("priority classification failed")
)

// Stage names the step that decided a priority.
type Stage string

const (
	StageTrivial         Stage = "trivial"
	StageShouted         Stage = "shouted_urgency"
	StageCategoryPattern Stage = "category_pattern"
	StageKeywords        Stage = "keywords"
	StageSeverity        Stage = "severity_score"
	StageModel           Stage = "model"
	StageModelFallback   Stage = "model_fallback"
	StageOverride        Stage = "override"
	StageFailOpen        Stage = "fail_open"
)

// Result is a priority decision and how it was reached.
type Result struct {
	Priority       domain.Priority `json:"priority"`
	Stage          Stage           `json:"stage"`
	Score          int             `json:"score"`
	ScoreRules     []string        `json:"score_rules,omitempty"`
	Tentative      domain.Priority `json:"tentative,omitempty"`
	MatchedPattern string          `json:"matched_pattern,omitempty"`
	Keywords       []string        `json:"keywords,omitempty"`
	ModelConsulted bool            `json:"model_consulted"`
	ModelPriority  domain.Priority `json:"model_priority,omitempty"`
	Override       string          `json:"override,omitempty"`
	// Err is set only when the result is the medium fail-open default.
	Err error `json:"-"`
}

// Config tunes a Classifier.
type Config struct {
	// ModelTimeout bounds the model call; zero means DefaultModelTimeout.
	ModelTimeout time.Duration
	Recorder     Recorder
	Tracer       trace.Tracer
}

// Classifier is safe for concurrent use.
type Classifier struct {
	model        Model
	logger       infralogger.Logger
	keywords     *keywordMatcher
	modelTimeout time.Duration
	recorder     Recorder
	tracer       trace.Tracer
}

// New creates a classifier. model may be nil, in which case complaints that
// need the model fail open to medium.
func New(model Model, logger infralogger.Logger, cfg Config) *Classifier {
	if cfg.ModelTimeout <= 0 {
		cfg.ModelTimeout = DefaultModelTimeout
	}
	if cfg.Recorder == nil {
		cfg.Recorder = nopRecorder{}
	}
	if cfg.Tracer == nil {
		cfg.Tracer = otel.Tracer("priority-classifier")
	}
	if logger == nil {
		logger = infralogger.NewNop()
	}

	return &Classifier{
		model:        model,
		logger:       logger,
		keywords:     newKeywordMatcher(emergencyKeywords),
		modelTimeout: cfg.ModelTimeout,
		recorder:     cfg.Recorder,
		tracer:       cfg.Tracer,
	}
}

// Classify never fails: errors that prevent a decision yield medium with
// Result.Err set.
func (c *Classifier) Classify(ctx context.Context, in domain.ClassificationInput) (res Result) {
	start := time.Now()
	ctx, span := c.tracer.Start(ctx, "priority.classify")

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Priority classification panicked, defaulting to medium",
				infralogger.Any("panic", r),
				infralogger.String("category", in.Category),
			)
			res = failOpen(fmt.Errorf("%w: %v", ErrInternal, r))
		}

		span.SetAttributes(
			attribute.String("priority.value", res.Priority.String()),
			attribute.String("priority.stage", string(res.Stage)),
			attribute.Int("priority.score", res.Score),
			attribute.Bool("priority.model_consulted", res.ModelConsulted),
		)
		span.End()
		c.recorder.RecordClassification(res.Priority, res.Stage, time.Since(start))
	}()

	return c.classify(ctx, in)
}

// Priority is Classify reduced to the priority value.
func (c *Classifier) Priority(ctx context.Context, in domain.ClassificationInput) domain.Priority {
	return c.Classify(ctx, in).Priority
}

// ModelConfigured reports whether borderline complaints can reach the model.
func (c *Classifier) ModelConfigured() bool {
	return c.model != nil
}

func (c *Classifier) classify(ctx context.Context, in domain.ClassificationInput) Result {
	text := normalize(in)

	if isTrivial(text) {
		return Result{Priority: domain.PriorityLow, Stage: StageTrivial}
	}

	if marker, ok := shoutedUrgency(text.original); ok {
		return Result{Priority: domain.PriorityHigh, Stage: StageShouted, MatchedPattern: marker}
	}

	if name, ok := matchCategoryPattern(in.NormalizedCategory(), text); ok {
		return Result{Priority: domain.PriorityHigh, Stage: StageCategoryPattern, MatchedPattern: name}
	}

	keywords := c.keywords.find(text.lower)
	if len(keywords) >= minKeywordMatches {
		return Result{Priority: domain.PriorityHigh, Stage: StageKeywords, Keywords: keywords}
	}

	sev := scoreSeverity(text)
	res := Result{
		Score:      sev.score,
		ScoreRules: sev.rules,
		Tentative:  tentativePriority(sev.score),
		Keywords:   keywords,
	}
	if res.Tentative == domain.PriorityHigh {
		res.Priority = domain.PriorityHigh
		res.Stage = StageSeverity
		return res
	}

	return c.consultModel(ctx, in, text, res)
}

func (c *Classifier) consultModel(ctx context.Context, in domain.ClassificationInput, text normalizedText, res Result) Result {
	if c.model == nil {
		c.logger.Error("Complaint needs model consultation but no model is configured, defaulting to medium",
			infralogger.Int("score", res.Score),
			infralogger.String("category", in.NormalizedCategory()),
		)
		failed := failOpen(ErrModelNotConfigured)
		failed.Score = res.Score
		failed.ScoreRules = res.ScoreRules
		failed.Tentative = res.Tentative
		return failed
	}

	res.ModelConsulted = true
	res.Priority = res.Tentative
	res.Stage = StageModelFallback

	modelCtx, cancel := context.WithTimeout(ctx, c.modelTimeout)
	defer cancel()

	modelCtx, span := c.tracer.Start(modelCtx, "priority.model")
	start := time.Now()
	outcome := c.model.Consult(modelCtx, buildPrompt(in, text))
	elapsed := time.Since(start)
	span.End()

	switch {
	case !outcome.OK():
		c.recorder.RecordModelCall(ModelOutcomeError, elapsed)
		c.logger.Warn("Model consultation failed, using severity score",
			infralogger.Error(outcome.Err),
			infralogger.String("tentative", res.Tentative.String()),
			infralogger.Duration("elapsed", elapsed),
		)
	default:
		p, ok := domain.ParsePriority(outcome.Text)
		if !ok {
			c.recorder.RecordModelCall(ModelOutcomeInvalid, elapsed)
			c.logger.Warn("Model returned an unrecognized priority, using severity score",
				infralogger.String("response", truncate(outcome.Text, maxLoggedResponse)),
				infralogger.String("tentative", res.Tentative.String()),
			)
			break
		}
		c.recorder.RecordModelCall(ModelOutcomeOK, elapsed)
		res.Priority = p
		res.ModelPriority = p
		res.Stage = StageModel
	}

	return applyOverrides(res, text)
}

// applyOverrides enforces the deterministic post-model rules.
func applyOverrides(res Result, text normalizedText) Result {
	if _, ok := trivialTokens[text.lower]; ok {
		res.Priority = domain.PriorityLow
		res.Stage = StageOverride
		res.Override = "trivial_token"
		return res
	}
	if escalationOverride.pattern.MatchString(text.original) {
		res.Priority = domain.PriorityHigh
		res.Stage = StageOverride
		res.Override = escalationOverride.name
	}
	return res
}

func failOpen(err error) Result {
	return Result{Priority: domain.PriorityMedium, Stage: StageFailOpen, Err: err}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

package bootstrap

import (
	"errors"

	infralogger "github.com/Sahil-memane/urban-resource-harmony-sub000/infrastructure/logger"
	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/config"
	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/llmclient"
	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/priority"
	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/telemetry"
)

// SetupModel creates the guarded model client. It returns nil when no API key
// is configured or the provider is unknown; the classifier then fails open
// for complaints that need the model.
func SetupModel(cfg *config.Config, log infralogger.Logger) *llmclient.Guard {
	gen, err := llmclient.New(cfg.LLM)
	if errors.Is(err, llmclient.ErrNotConfigured) {
		log.Warn("LLM API key not set, borderline complaints will default to medium")
		return nil
	}
	if err != nil {
		log.Error("LLM client unavailable", infralogger.Error(err))
		return nil
	}

	log.Info("LLM client initialized",
		infralogger.String("provider", gen.Name()),
		infralogger.String("model", cfg.LLM.Model),
	)
	return llmclient.NewGuard(gen, cfg.LLM, log)
}

// NewClassifier creates the priority classifier. guard and provider may be
// nil; provider supplies both the metrics recorder and the tracer.
func NewClassifier(cfg *config.Config, guard *llmclient.Guard, log infralogger.Logger, provider *telemetry.Provider) *priority.Classifier {
	var model priority.Model
	if guard != nil {
		model = guard
	}
	return priority.New(model, log, classifierConfig(cfg, provider))
}

func classifierConfig(cfg *config.Config, provider *telemetry.Provider) priority.Config {
	pcfg := priority.Config{ModelTimeout: cfg.Service.ModelTimeout}
	if provider != nil {
		pcfg.Recorder = provider
		pcfg.Tracer = provider.Tracer
	}
	return pcfg
}

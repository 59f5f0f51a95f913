// Package bootstrap handles application initialization and lifecycle management
// for the complaint priority service.
package bootstrap

import (
	"context"
	"fmt"

	infralogger "github.com/Sahil-memane/urban-resource-harmony-sub000/infrastructure/logger"
	"github.com/Sahil-memane/urban-resource-harmony-sub000/infrastructure/profiling"
	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/telemetry"
)

// Start initializes and runs the service until ctx is cancelled or a
// shutdown signal arrives.
func Start(ctx context.Context, configPath, version string) error {
	// Phase 1: Load config and create logger
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if version != "" {
		cfg.Service.Version = version
	}

	log, err := CreateLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Phase 2: Start profiling (if enabled)
	profiler, err := profiling.Start(cfg.Service.Name, cfg.Service.Version, cfg.Profiling)
	if err != nil {
		log.Warn("Profiling disabled", infralogger.Error(err))
	}
	defer func() { _ = profiler.Stop() }()

	// Phase 3: Classifier and model
	provider := telemetry.NewProvider()
	guard := SetupModel(cfg, log)
	classifier := NewClassifier(cfg, guard, log, provider)

	// Phase 4: Optional stores
	db := SetupDatabase(cfg, log)
	if db != nil {
		defer func() {
			if closeErr := db.Close(); closeErr != nil {
				log.Error("Failed to close database", infralogger.Error(closeErr))
			}
		}()
	}

	index := SetupComplaintIndex(ctx, cfg, log)

	publisher, closeRedis := SetupEventPublisher(ctx, cfg, log)
	defer closeRedis()

	// Phase 5: Setup and run HTTP server
	server := SetupHTTPServer(cfg, Components{
		Classifier: classifier,
		Model:      guard,
		DB:         db,
		Index:      index,
		Publisher:  publisher,
		Telemetry:  provider,
	}, log)

	log.Info("Starting HTTP server",
		infralogger.Int("port", cfg.Service.Port),
		infralogger.Bool("model_configured", classifier.ModelConfigured()),
	)

	if runErr := server.RunWithGracefulShutdown(ctx); runErr != nil {
		log.Error("Server error", infralogger.Error(runErr))
		return fmt.Errorf("server error: %w", runErr)
	}

	log.Info("Server exited")
	return nil
}

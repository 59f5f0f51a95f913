package bootstrap

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	infraes "github.com/Sahil-memane/urban-resource-harmony-sub000/infrastructure/elasticsearch"
	infralogger "github.com/Sahil-memane/urban-resource-harmony-sub000/infrastructure/logger"
	infraredis "github.com/Sahil-memane/urban-resource-harmony-sub000/infrastructure/redis"
	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/config"
	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/database"
	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/events"
	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/storage"
)

// SetupDatabase connects to PostgreSQL. It returns nil when no host is
// configured or the connection fails; the complaint routes then answer 503.
func SetupDatabase(cfg *config.Config, log infralogger.Logger) *sqlx.DB {
	db, err := database.NewPostgresConnection(cfg.Database)
	if errors.Is(err, database.ErrNotConfigured) {
		log.Info("Database not configured, complaint storage disabled")
		return nil
	}
	if err != nil {
		log.Warn("Database not available, complaint storage disabled", infralogger.Error(err))
		return nil
	}

	log.Info("Database connected",
		infralogger.String("host", cfg.Database.Host),
		infralogger.String("database", cfg.Database.DBName),
	)
	return db
}

// SetupComplaintIndex connects to Elasticsearch and ensures the complaint
// index exists. Returns nil if Elasticsearch is disabled or unavailable.
func SetupComplaintIndex(ctx context.Context, cfg *config.Config, log infralogger.Logger) *storage.ComplaintIndex {
	if cfg.Elasticsearch.URL == "" {
		return nil
	}

	client, err := infraes.NewClient(ctx, infraes.Config{
		URL:        cfg.Elasticsearch.URL,
		Username:   cfg.Elasticsearch.Username,
		Password:   cfg.Elasticsearch.Password,
		APIKey:     cfg.Elasticsearch.APIKey,
		MaxRetries: cfg.Elasticsearch.MaxRetries,
	}, log)
	if err != nil {
		log.Warn("Elasticsearch not available, dashboard index disabled", infralogger.Error(err))
		return nil
	}

	index := storage.NewComplaintIndex(client, cfg.Elasticsearch.Index)
	if err = index.EnsureIndex(ctx); err != nil {
		log.Warn("Failed to ensure complaint index, dashboard index disabled", infralogger.Error(err))
		return nil
	}

	log.Info("Complaint index ready", infralogger.String("index", cfg.Elasticsearch.Index))
	return index
}

// SetupEventPublisher creates an optional event publisher if Redis is
// configured. The returned close function is always safe to call.
func SetupEventPublisher(ctx context.Context, cfg *config.Config, log infralogger.Logger) (*events.Publisher, func()) {
	noop := func() {}
	if cfg.Redis.Address == "" {
		return nil, noop
	}

	client, err := infraredis.NewClient(ctx, infraredis.Config{
		Address:  cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis not available, events disabled", infralogger.Error(err))
		return nil, noop
	}

	log.Info("Event publisher initialized",
		infralogger.String("redis_address", cfg.Redis.Address),
		infralogger.String("channel", cfg.Redis.ChannelClassified),
	)
	return events.NewPublisher(client, cfg.Redis.ChannelClassified, log), func() {
		if closeErr := client.Close(); closeErr != nil {
			log.Error("Failed to close redis client", infralogger.Error(closeErr))
		}
	}
}

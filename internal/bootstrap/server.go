package bootstrap

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	infragin "github.com/Sahil-memane/urban-resource-harmony-sub000/infrastructure/gin"
	infralogger "github.com/Sahil-memane/urban-resource-harmony-sub000/infrastructure/logger"
	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/api"
	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/config"
	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/database"
	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/events"
	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/extraction"
	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/llmclient"
	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/priority"
	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/storage"
	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/telemetry"
)

// Components are the initialized collaborators the server is built from.
// Every field except Classifier may be nil.
type Components struct {
	Classifier *priority.Classifier
	Model      *llmclient.Guard
	DB         *sqlx.DB
	Index      *storage.ComplaintIndex
	Publisher  *events.Publisher
	Telemetry  *telemetry.Provider
}

// SetupHTTPServer creates and configures the HTTP server.
func SetupHTTPServer(cfg *config.Config, comp Components, log infralogger.Logger) *infragin.Server {
	deps := api.Deps{
		Classifier: comp.Classifier,
		Extractor:  extraction.NewClient(cfg.Extraction),
		Logger:     log,
	}
	if comp.Model != nil {
		deps.Model = comp.Model
	}
	if comp.DB != nil {
		deps.Complaints = database.NewComplaintRepository(comp.DB)
		deps.Roles = database.NewProfileRepository(comp.DB)
	}
	if comp.Index != nil {
		deps.Index = comp.Index
	}
	if comp.Publisher.Enabled() {
		deps.Events = comp.Publisher
	}
	if comp.Telemetry != nil {
		deps.Metrics = comp.Telemetry
	}

	handler := api.NewHandler(deps)

	var metrics http.Handler
	if comp.Telemetry != nil {
		metrics = comp.Telemetry.Handler()
	}

	builder := infragin.NewServerBuilder(cfg.Service.Name, cfg.Service.Port).
		WithLogger(log).
		WithDebug(cfg.Service.Debug).
		WithVersion(cfg.Service.Version).
		WithCORSOrigins(cfg.Service.CORSOrigins).
		WithRoutes(func(router *gin.Engine) {
			api.SetupRoutes(router, handler, cfg.Auth.JWTSecret, metrics)
		})

	if cfg.Service.ReadTimeout > 0 {
		builder = builder.WithTimeouts(cfg.Service.ReadTimeout, 0, 0)
	}
	if comp.DB != nil {
		builder = builder.WithPingCheck("database", comp.DB.PingContext, true)
	}
	if comp.Index != nil {
		builder = builder.WithPingCheck("elasticsearch", comp.Index.TestConnection, false)
	}
	if comp.Model != nil {
		builder = builder.WithPingCheck("llm", func(ctx context.Context) error {
			return comp.Model.Health(ctx)
		}, false)
	}

	return builder.Build()
}

// Package config holds the complaint priority service configuration.
package config

import (
	"time"

	infraconfig "github.com/Sahil-memane/urban-resource-harmony-sub000/infrastructure/config"
	infralogger "github.com/Sahil-memane/urban-resource-harmony-sub000/infrastructure/logger"
	"github.com/Sahil-memane/urban-resource-harmony-sub000/infrastructure/profiling"
	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/database"
	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/events"
	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/extraction"
	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/llmclient"
	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/storage"
)

// Default configuration values.
const (
	defaultServiceName    = "complaint-priority"
	defaultServiceVersion = "1.0.0"
	defaultServicePort    = 8090
	defaultDBPort         = "5432"
	defaultDBUser         = "postgres"
	defaultDBName         = "citizen_portal"
	defaultDBSSLMode      = "disable"
	defaultESMaxRetries   = 3
)

// Config holds all configuration for the service.
type Config struct {
	Service       ServiceConfig       `yaml:"service"`
	Database      database.Config     `yaml:"database"`
	Elasticsearch ElasticsearchConfig `yaml:"elasticsearch"`
	Redis         RedisConfig         `yaml:"redis"`
	Logging       infralogger.Config  `yaml:"logging"`
	Auth          AuthConfig          `yaml:"auth"`
	LLM           llmclient.Config    `yaml:"llm"`
	Extraction    extraction.Config   `yaml:"extraction"`
	Profiling     profiling.Config    `yaml:"profiling"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name        string        `yaml:"name"`
	Version     string        `yaml:"version"`
	Port        int           `env:"COMPLAINT_PRIORITY_PORT" yaml:"port"`
	Debug       bool          `env:"APP_DEBUG"               yaml:"debug"`
	CORSOrigins []string      `env:"CORS_ORIGINS"            yaml:"cors_origins"`
	ReadTimeout time.Duration `yaml:"read_timeout"`
	// ModelTimeout bounds one priority model consultation.
	ModelTimeout time.Duration `env:"PRIORITY_MODEL_TIMEOUT" yaml:"model_timeout"`
}

// ElasticsearchConfig holds Elasticsearch configuration. An empty URL
// disables the dashboard index.
type ElasticsearchConfig struct {
	URL        string `env:"ELASTICSEARCH_URL"      yaml:"url"`
	Username   string `env:"ELASTICSEARCH_USERNAME" yaml:"username"`
	Password   string `env:"ELASTICSEARCH_PASSWORD" yaml:"password"`
	APIKey     string `env:"ELASTICSEARCH_API_KEY"  yaml:"api_key"`
	MaxRetries int    `yaml:"max_retries"`
	Index      string `env:"COMPLAINTS_INDEX"       yaml:"index"`
}

// RedisConfig holds Redis configuration. An empty address disables events.
type RedisConfig struct {
	Address           string `env:"REDIS_ADDRESS"  yaml:"address"`
	Password          string `env:"REDIS_PASSWORD" yaml:"password"`
	DB                int    `yaml:"db"`
	ChannelClassified string `yaml:"channel_classified"`
}

// AuthConfig holds authentication configuration. An empty secret leaves the
// /api/v1 routes unauthenticated, which is only meant for local development.
type AuthConfig struct {
	JWTSecret string `env:"AUTH_JWT_SECRET" yaml:"jwt_secret"`
}

// Load loads configuration from the specified path.
func Load(path string) (*Config, error) {
	return infraconfig.LoadWithDefaults[Config](path, setDefaults)
}

func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setDatabaseDefaults(&cfg.Database)
	setElasticsearchDefaults(&cfg.Elasticsearch)
	setRedisDefaults(&cfg.Redis)
	cfg.Logging.SetDefaults()
	cfg.LLM.SetDefaults()
}

func setServiceDefaults(s *ServiceConfig) {
	if s.Name == "" {
		s.Name = defaultServiceName
	}
	if s.Version == "" {
		s.Version = defaultServiceVersion
	}
	if s.Port == 0 {
		s.Port = defaultServicePort
	}
	if s.ModelTimeout == 0 {
		s.ModelTimeout = llmclient.DefaultTimeout
	}
}

func setDatabaseDefaults(d *database.Config) {
	if d.Port == "" {
		d.Port = defaultDBPort
	}
	if d.User == "" {
		d.User = defaultDBUser
	}
	if d.DBName == "" {
		d.DBName = defaultDBName
	}
	if d.SSLMode == "" {
		d.SSLMode = defaultDBSSLMode
	}
}

func setElasticsearchDefaults(e *ElasticsearchConfig) {
	if e.MaxRetries == 0 {
		e.MaxRetries = defaultESMaxRetries
	}
	if e.Index == "" {
		e.Index = storage.DefaultIndex
	}
}

func setRedisDefaults(r *RedisConfig) {
	if r.ChannelClassified == "" {
		r.ChannelClassified = events.DefaultChannel
	}
}

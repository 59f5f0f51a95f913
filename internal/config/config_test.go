package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, "complaint-priority", cfg.Service.Name)
	assert.Equal(t, 8090, cfg.Service.Port)
	assert.Equal(t, 10*time.Second, cfg.Service.ModelTimeout)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "complaints", cfg.Elasticsearch.Index)
	assert.Equal(t, "complaints:classified", cfg.Redis.ChannelClassified)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, 10, cfg.LLM.MaxOutputTokens)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	yml := `
service:
  port: 9000
  model_timeout: 3s
llm:
  provider: openai
  temperature: 0.2
database:
  host: db.internal
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

	t.Setenv("LLM_API_KEY", "from-env")
	t.Setenv("COMPLAINT_PRIORITY_PORT", "9100")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Service.Port, "environment wins over file")
	assert.Equal(t, 3*time.Second, cfg.Service.ModelTimeout)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	require.NotNil(t, cfg.LLM.Temperature)
	assert.InDelta(t, 0.2, *cfg.LLM.Temperature, 1e-9)
	assert.Equal(t, "from-env", cfg.LLM.APIKey)
	assert.Equal(t, "db.internal", cfg.Database.Host)
}

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sahil-memane/urban-resource-harmony-sub000/infrastructure/config"
)

type sampleConfig struct {
	Name    string        `yaml:"name"    env:"SAMPLE_NAME"`
	Port    int           `yaml:"port"    env:"SAMPLE_PORT"`
	Timeout time.Duration `yaml:"timeout" env:"SAMPLE_TIMEOUT"`
	Rate    float64       `yaml:"rate"    env:"SAMPLE_RATE"`
	Ratio   *float64      `yaml:"ratio"   env:"SAMPLE_RATIO"`
	Nested  struct {
		Enabled bool     `yaml:"enabled" env:"SAMPLE_ENABLED"`
		Hosts   []string `yaml:"hosts"   env:"SAMPLE_HOSTS"`
	} `yaml:"nested"`
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_ReadsYAML(t *testing.T) {
	path := writeConfig(t, "name: complaints\nport: 8080\ntimeout: 3s\nnested:\n  enabled: true\n")

	cfg, err := config.Load[sampleConfig](path)
	require.NoError(t, err)

	assert.Equal(t, "complaints", cfg.Name)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.True(t, cfg.Nested.Enabled)
}

func TestLoad_MissingFileIsNotFatal(t *testing.T) {
	t.Setenv("SAMPLE_NAME", "from-env")

	cfg, err := config.Load[sampleConfig](filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Name)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "name: [unterminated\n")

	_, err := config.Load[sampleConfig](path)
	require.Error(t, err)
}

func TestLoadWithDefaults_EnvWinsOverDefaults(t *testing.T) {
	t.Setenv("SAMPLE_PORT", "9090")
	t.Setenv("SAMPLE_TIMEOUT", "250ms")
	t.Setenv("SAMPLE_RATE", "0.5")
	t.Setenv("SAMPLE_ENABLED", "yes")
	t.Setenv("SAMPLE_HOSTS", "a:1, b:2")

	path := writeConfig(t, "name: complaints\n")

	cfg, err := config.LoadWithDefaults[sampleConfig](path, func(c *sampleConfig) {
		if c.Port == 0 {
			c.Port = 8080
		}
		if c.Timeout == 0 {
			c.Timeout = time.Second
		}
	})
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
	assert.InDelta(t, 0.5, cfg.Rate, 0.0001)
	assert.True(t, cfg.Nested.Enabled)
	assert.Equal(t, []string{"a:1", "b:2"}, cfg.Nested.Hosts)
}

func TestLoadWithDefaults_PointerKeepsExplicitZero(t *testing.T) {
	t.Setenv("SAMPLE_RATIO", "0")

	cfg, err := config.LoadWithDefaults[sampleConfig](writeConfig(t, "name: complaints\n"), func(c *sampleConfig) {
		if c.Ratio == nil {
			ratio := 0.7
			c.Ratio = &ratio
		}
	})
	require.NoError(t, err)

	require.NotNil(t, cfg.Ratio)
	assert.Zero(t, *cfg.Ratio)
}

func TestLoadWithDefaults_InvalidPointerValueIsIgnored(t *testing.T) {
	t.Setenv("SAMPLE_RATIO", "lots")

	cfg, err := config.LoadWithDefaults[sampleConfig](writeConfig(t, "ratio: 0.25\n"), nil)
	require.NoError(t, err)

	require.NotNil(t, cfg.Ratio)
	assert.InDelta(t, 0.25, *cfg.Ratio, 0.0001)
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	assert.Equal(t, "config.yml", config.GetConfigPath("config.yml"))

	t.Setenv("CONFIG_PATH", "/etc/complaints.yml")
	assert.Equal(t, "/etc/complaints.yml", config.GetConfigPath("config.yml"))
}

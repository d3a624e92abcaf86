package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/textsentry/textsentry/pkg/config"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
server:
  host: 127.0.0.1
  port: 8181

metrics:
  enabled: true

redis:
  enabled: true
  host: redis.internal
  port: 6380

classifier:
  enabled: true
  base_url: http://classifier:9000
  thresholds:
    hate: 0.5

pipeline:
  stage_timeout_ms: 1500
  weights:
    base: 0.40
    contextual: 0.35
    sarcasm: 0.15
    normalization: 0.10
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o600))

	require.NoError(t, config.Load(dir))
	cfg := config.GetConfig()

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8181, cfg.Server.Port)
	assert.True(t, cfg.Metrics.Enabled)

	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis.internal", cfg.Redis.Host)
	assert.Equal(t, 6380, cfg.Redis.Port)

	assert.True(t, cfg.Classifier.Enabled)
	assert.Equal(t, "http://classifier:9000", cfg.Classifier.BaseURL)
	assert.InDelta(t, 0.5, cfg.Classifier.Thresholds["hate"], 1e-9)

	assert.Equal(t, 1500, cfg.Pipeline.StageTimeoutMs)
	assert.InDelta(t, 0.35, cfg.Pipeline.Weights.Contextual, 1e-9)

	// Unset values fall back to defaults.
	assert.Equal(t, 9090, cfg.Server.MetricsPort)
	assert.InDelta(t, 0.7, cfg.Pipeline.Threshold, 1e-9)
	assert.Equal(t, 300, cfg.Redis.TTLSeconds)
}

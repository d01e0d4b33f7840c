package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nullbyte-labs/httpforge/internal/config"
)

func TestDefaultMatchesSpecDefaults(t *testing.T) {
	app := config.Default()
	assert.Equal(t, int64(30000), app.TimeoutMs)
	assert.Equal(t, 6, app.Pool.MaxConnectionsPerHost)
	assert.False(t, app.TLS.RejectUnauthorized)
	assert.Equal(t, "1.0", app.TLS.MinVersion)
	assert.Equal(t, "1.3", app.TLS.MaxVersion)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	app, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), app)
}

func TestLoadBytesOverridesOnlyGivenKeys(t *testing.T) {
	yaml := []byte(`
timeout_ms: 5000
pool:
  max_connections_per_host: 20
logging:
  level: debug
  json: false
`)
	app, err := config.LoadBytes(yaml)
	require.NoError(t, err)

	assert.Equal(t, int64(5000), app.TimeoutMs)
	assert.Equal(t, 20, app.Pool.MaxConnectionsPerHost)
	assert.Equal(t, "debug", app.Logging.Level)
	assert.False(t, app.Logging.JSON)
	// unspecified keys keep the built-in defaults.
	assert.Equal(t, "1.0", app.TLS.MinVersion)
}

func TestLoadBytesEmptyReturnsDefaults(t *testing.T) {
	app, err := config.LoadBytes(nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), app)
}

func TestLoadBytesRejectsMalformedYAML(t *testing.T) {
	_, err := config.LoadBytes([]byte("not: [valid: yaml"))
	assert.Error(t, err)
}

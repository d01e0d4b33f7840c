package obs_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nullbyte-labs/httpforge/internal/config"
	"github.com/nullbyte-labs/httpforge/internal/obs"
)

func TestNewBuildsStdoutLogger(t *testing.T) {
	logger, err := obs.New(config.LoggingConfig{Level: "info", JSON: true})
	require.NoError(t, err)
	require.NotNil(t, logger)
	logger.Info("hello")
	_ = logger.Sync() // stdout sync can return ENOTTY/EINVAL on some platforms; not a logger defect
}

func TestNewBuildsRotatingFileSink(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "nested", "httpforge.log")

	logger, err := obs.New(config.LoggingConfig{Level: "debug", File: logPath})
	require.NoError(t, err)
	logger.Debug("written to file")
	_ = logger.Sync()

	assert.FileExists(t, logPath)
}

func TestNewNopDiscardsSilently(t *testing.T) {
	logger := obs.NewNop()
	require.NotNil(t, logger)
	logger.Error("should not panic or write anywhere")
}

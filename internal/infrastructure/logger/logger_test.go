package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/garmentflow/backend/internal/infrastructure/config"
)

func TestNew(t *testing.T) {
	t.Run("creates console logger", func(t *testing.T) {
		logger, err := New(DefaultConfig())
		require.NoError(t, err)
		require.NotNil(t, logger)
		assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("creates json logger at debug level", func(t *testing.T) {
		cfg := ProductionConfig()
		cfg.Level = "debug"
		logger, err := New(cfg)
		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("writes to file output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		cfg := DefaultConfig()
		cfg.Output = path

		logger, err := New(cfg)
		require.NoError(t, err)

		logger.Info("hello")
		require.NoError(t, Sync(logger))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "hello")
	})
}

func TestNewFromConfig(t *testing.T) {
	logger, err := NewFromConfig(config.LogConfig{Level: "warn", Format: "json"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestNewForEnvironment(t *testing.T) {
	prod, err := NewForEnvironment("production")
	require.NoError(t, err)
	assert.NotNil(t, prod)

	dev, err := NewForEnvironment("development")
	require.NoError(t, err)
	assert.NotNil(t, dev)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.FatalLevel, parseLevel("fatal"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("unknown"))
}

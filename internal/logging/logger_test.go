package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/funvibe/fxquery/internal/config"
)

func TestNew(t *testing.T) {
	for _, format := range []string{"", "console", "json"} {
		logger, err := New(config.LogConfig{Level: "warn", Format: format})
		require.NoError(t, err, format)
		assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
		assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	}
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New(config.LogConfig{Level: "loud"})
	assert.ErrorContains(t, err, "log level")
}

func TestNew_FromParsedConfig(t *testing.T) {
	cfg, err := config.Parse([]byte("log: {level: Warn, format: json}"))
	require.NoError(t, err)
	logger, err := New(cfg.Log)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

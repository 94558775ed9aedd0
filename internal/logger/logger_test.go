package logger

import (
	"testing"

	"github.com/ecostock/ecostock-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	log, err := NewLogger(
		&config.LoggingConfig{Level: "warn", Format: "console"},
		&config.AppConfig{Name: "EcoStock API", Environment: "development"},
	)
	require.NoError(t, err)

	assert.Equal(t, "ecostock-api", log.Name())
	assert.Equal(t, "ecostock-api.console", log.Named("console").Name())
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
}

func TestNewLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	log, err := NewLogger(
		&config.LoggingConfig{Level: "loud", Format: "json"},
		&config.AppConfig{Name: "EcoStock API", Environment: "production"},
	)
	require.NoError(t, err)

	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestServiceName(t *testing.T) {
	assert.Equal(t, "ecostock-api", serviceName("EcoStock API"))
	assert.Equal(t, "painel-admin", serviceName("  Painel   Admin "))
	assert.Equal(t, "ecostock-api", serviceName(""))
}

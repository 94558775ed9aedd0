package logger

import (
	"fmt"
	"strings"

	"github.com/ecostock/ecostock-api/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the root logger. Production always logs JSON; elsewhere
// logging.format picks between "json" and a colored console encoder. The
// logger is named after app.name so console and job children read as
// "ecostock-api.console" and "ecostock-api.jobs".
func NewLogger(cfg *config.LoggingConfig, appCfg *config.AppConfig) (*zap.Logger, error) {
	zapCfg := zap.NewDevelopmentConfig()
	zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if appCfg.IsProduction() || strings.EqualFold(cfg.Format, "json") {
		zapCfg = zap.NewProductionConfig()
		zapCfg.EncoderConfig.TimeKey = "timestamp"
		zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.InitialFields = map[string]interface{}{
		"environment": appCfg.Environment,
	}

	log, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return log.Named(serviceName(appCfg.Name)), nil
}

// serviceName turns "EcoStock API" into "ecostock-api"
func serviceName(appName string) string {
	name := strings.Join(strings.Fields(strings.ToLower(appName)), "-")
	if name == "" {
		return "ecostock-api"
	}
	return name
}

// WithRequest scopes a logger to one HTTP request
func WithRequest(log *zap.Logger, method, path, requestID string) *zap.Logger {
	return log.With(
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("path", path),
	)
}

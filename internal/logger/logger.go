// Package logger configures the application's structured logging.
//
// It uses zerolog for all log output and, when a New Relic license key
// is configured, forwards application logs and decorates them with
// trace context so log lines correlate with distributed traces.
package logger

import (
	"io"
	"os"

	"github.com/newrelic/go-agent/v3/integrations/logcontext-v2/zerologWriter"
	"github.com/pixelfeed/backend/internal/config"
	"github.com/rs/zerolog"
)

// New builds the application's root logger from the observability
// config. loggerService may be nil (or hold a nil agent) when New
// Relic is disabled; log forwarding is skipped in that case.
func New(cfg *config.Config, loggerService *LoggerService) *zerolog.Logger {
	level := parseLevel(cfg.Observability.GetLogLevel())

	var out io.Writer = os.Stdout
	if cfg.Observability.Logging.Format == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	// Forward logs to New Relic when the agent is running and
	// forwarding is enabled. The writer decorates each line with
	// linking metadata before it reaches stdout.
	if loggerService != nil && loggerService.GetApplication() != nil &&
		cfg.Observability.NewRelic.AppLogForwardingEnabled {
		w := zerologWriter.New(out, loggerService.GetApplication())
		out = &w
	}

	logger := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", cfg.Observability.ServiceName).
		Str("env", cfg.Observability.Environment).
		Logger()

	return &logger
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

package logger

import (
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pixelfeed/backend/internal/config"
	"github.com/rs/zerolog"
)

// LoggerService wraps the optional New Relic application instance.
// When New Relic is not configured, the service exists but carries a
// nil agent and every consumer degrades to a no-op.
type LoggerService struct {
	nrApp *newrelic.Application
}

// NewLoggerService initializes the New Relic agent when a license key
// is configured. A missing key is not an error; it simply disables APM.
func NewLoggerService(cfg *config.Config) (*LoggerService, error) {
	nr := cfg.Observability.NewRelic
	if nr.LicenseKey == "" {
		return &LoggerService{}, nil
	}

	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName(cfg.Observability.ServiceName),
		newrelic.ConfigLicense(nr.LicenseKey),
		newrelic.ConfigAppLogForwardingEnabled(nr.AppLogForwardingEnabled),
		newrelic.ConfigDistributedTracerEnabled(nr.DistributedTracingEnabled),
		func(c *newrelic.Config) {
			c.Labels = map[string]string{
				"environment": cfg.Observability.Environment,
			}
		},
	)
	if err != nil {
		return nil, err
	}

	return &LoggerService{nrApp: app}, nil
}

// GetApplication returns the New Relic application, or nil when APM is
// disabled.
func (s *LoggerService) GetApplication() *newrelic.Application {
	if s == nil {
		return nil
	}
	return s.nrApp
}

// WithTraceContext returns a child logger carrying the transaction's
// trace.id and span.id so log lines correlate with distributed traces.
func WithTraceContext(logger zerolog.Logger, txn *newrelic.Transaction) zerolog.Logger {
	if txn == nil {
		return logger
	}
	md := txn.GetTraceMetadata()
	return logger.With().
		Str("trace.id", md.TraceID).
		Str("span.id", md.SpanID).
		Logger()
}

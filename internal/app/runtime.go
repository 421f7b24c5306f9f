package app

import (
	"context"
	"time"

	"github.com/riskibarqy/fpl-advisor/internal/config"
	"github.com/riskibarqy/fpl-advisor/internal/observability"
	"github.com/riskibarqy/fpl-advisor/internal/platform/logging"
)

const observabilityShutdownTimeout = 5 * time.Second

// NewLogger builds the process logger and installs it as the default.
func NewLogger(cfg config.Config) *logging.Logger {
	logger := logging.NewWithOptions(logging.Options{
		Level:      cfg.LogLevel,
		FilePath:   cfg.LogFile,
		MaxAgeDays: cfg.LogMaxAgeDays,
	}).With("service", cfg.ServiceName, "env", cfg.AppEnv)
	logging.SetDefault(logger)
	return logger
}

// StartObservability starts tracing, profiling and pprof. The returned func
// flushes and stops all of them, then syncs the logger.
func StartObservability(cfg config.Config, logger *logging.Logger) (func(), error) {
	rt, err := observability.Start(cfg, logger)
	if err != nil {
		return nil, err
	}
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), observabilityShutdownTimeout)
		defer cancel()
		if err := rt.Shutdown(ctx); err != nil {
			logger.Warn("observability shutdown failed", "error", err)
		}
		_ = logger.Sync()
	}, nil
}

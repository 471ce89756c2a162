// Package observability provides structured logging, metrics, and
// tracing for resolution runs.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
)

// EnrichLogger adds resolution context to a logger.
// Returns a new logger with run_id and manifest fields.
func EnrichLogger(logger *slog.Logger, runID, manifest string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("run_id", runID),
		slog.String("manifest", manifest),
	)
}

// LogRunStart logs the start of a resolution run.
func LogRunStart(logger *slog.Logger, runID, manifest string) {
	if logger == nil {
		return
	}
	logger.Info("resolution starting",
		slog.String("run_id", runID),
		slog.String("manifest", manifest),
	)
}

// LogRunComplete logs a successful resolution run.
func LogRunComplete(logger *slog.Logger, runID string, durationMs float64, aliases, switches int) {
	if logger == nil {
		return
	}
	logger.Info("resolution completed",
		slog.String("run_id", runID),
		slog.Float64("duration_ms", durationMs),
		slog.Int("aliases", aliases),
		slog.Int("switches", switches),
	)
}

// LogRunError logs a failed resolution run.
func LogRunError(logger *slog.Logger, runID string, err error) {
	if logger == nil {
		return
	}
	logger.Error("resolution failed",
		slog.String("run_id", runID),
		slog.String("error", err.Error()),
	)
}

// LogAliasResolved logs one resolved alias declaration.
func LogAliasResolved(logger *slog.Logger, name string, enabled, pub bool) {
	if logger == nil {
		return
	}
	logger.Debug("alias resolved",
		slog.String("alias", name),
		slog.Bool("enabled", enabled),
		slog.Bool("pub", pub),
	)
}

// LogSwitchResolved logs one resolved switch.
func LogSwitchResolved(logger *slog.Logger, name string, arm int, fallback bool) {
	if logger == nil {
		return
	}
	logger.Debug("switch resolved",
		slog.String("switch", name),
		slog.Int("arm", arm),
		slog.Bool("fallback", fallback),
	)
}

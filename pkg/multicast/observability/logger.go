// Package observability provides structured logging, metrics, and tracing
// for multicast registries.
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

// EnrichLogger adds registry context to a logger.
// Returns a new logger with the registry_id field attached.
//
// Example:
//
//	enriched := EnrichLogger(logger, "mcast-a1b2c3d4")
//	enriched.Info("observer attached") // includes registry_id
func EnrichLogger(logger *slog.Logger, registryID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("registry_id", registryID),
	)
}

// LogNotifyStart logs the start of a notify pass.
func LogNotifyStart(logger *slog.Logger, registryID string, members int) {
	if logger == nil {
		return
	}
	logger.Debug("notify pass starting",
		slog.String("registry_id", registryID),
		slog.Int("members", members),
	)
}

// LogNotifyComplete logs successful completion of a notify pass.
func LogNotifyComplete(logger *slog.Logger, registryID string, members int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("notify pass completed",
		slog.String("registry_id", registryID),
		slog.Int("members", members),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogNotifyError logs a member callback failure during a notify pass.
func LogNotifyError(logger *slog.Logger, registryID string, memberIndex int, err error) {
	if logger == nil {
		return
	}
	logger.Error("member callback failed",
		slog.String("registry_id", registryID),
		slog.Int("member_index", memberIndex),
		slog.String("error", err.Error()),
	)
}

// LogMemberReclaimed logs that a weakly held member was dropped after
// being reclaimed by the garbage collector.
func LogMemberReclaimed(logger *slog.Logger, registryID string) {
	if logger == nil {
		return
	}
	logger.Debug("reclaimed member dropped",
		slog.String("registry_id", registryID),
	)
}

// LogCapacityReached logs that an add was ignored because the registry
// is at its configured member limit.
func LogCapacityReached(logger *slog.Logger, registryID string, limit int) {
	if logger == nil {
		return
	}
	logger.Warn("member limit reached, add ignored",
		slog.String("registry_id", registryID),
		slog.Int("limit", limit),
	)
}

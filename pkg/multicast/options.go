package multicast

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/randalmurphal/multicast/pkg/multicast/observability"
)

// FailurePolicy controls how Notify reacts when a member callback fails.
type FailurePolicy string

// Failure policy constants.
const (
	// FailFast aborts the remaining fan-out on the first callback error
	// and returns it. This is the default.
	FailFast FailurePolicy = "fail_fast"

	// ContinueOnError runs the full fan-out, logs each failure, and
	// returns every callback error joined together.
	ContinueOnError FailurePolicy = "continue"
)

// settings holds configuration shared by both registry flavors.
type settings struct {
	id         string
	policy     FailurePolicy
	maxMembers int
	onError    func(error)
	logger     *slog.Logger
	metrics    observability.MetricsRecorder
	spans      observability.SpanManager
}

// defaultSettings returns the default registry configuration.
func defaultSettings() settings {
	return settings{
		id:      newRegistryID(),
		policy:  FailFast,
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
}

// newRegistryID returns a short unique registry identifier.
func newRegistryID() string {
	return fmt.Sprintf("mcast-%s", uuid.New().String()[:8])
}

// Option configures a registry.
type Option func(*settings)

// WithID sets the registry identifier used in logs, metrics, and spans.
// Default: a generated "mcast-" prefixed ID.
func WithID(id string) Option {
	return func(s *settings) {
		if id != "" {
			s.id = id
		}
	}
}

// WithLogger sets the logger for the registry.
// Default: nil (no logging).
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithFailurePolicy selects how Notify reacts to callback errors.
// Default: FailFast.
func WithFailurePolicy(policy FailurePolicy) Option {
	return func(s *settings) {
		switch policy {
		case FailFast, ContinueOnError:
			s.policy = policy
		}
	}
}

// WithOnError registers a callback invoked for each member callback
// error during Notify, regardless of the failure policy.
func WithOnError(fn func(error)) Option {
	return func(s *settings) {
		s.onError = fn
	}
}

// WithMaxMembers caps registry membership. Once the cap is reached,
// Add logs a warning and ignores the new member.
// Default: 0 (unlimited).
func WithMaxMembers(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxMembers = n
		}
	}
}

// WithMetrics sets the metrics recorder for the registry.
// Default: observability.NoopMetrics.
func WithMetrics(metrics observability.MetricsRecorder) Option {
	return func(s *settings) {
		if metrics != nil {
			s.metrics = metrics
		}
	}
}

// WithSpans sets the span manager used to trace notify passes.
// Default: observability.NoopSpanManager.
func WithSpans(spans observability.SpanManager) Option {
	return func(s *settings) {
		if spans != nil {
			s.spans = spans
		}
	}
}

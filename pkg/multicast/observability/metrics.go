package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// RemovalReason labels why members left a registry.
type RemovalReason string

// Removal reason constants.
const (
	// RemovalExplicit means the owner called Remove.
	RemovalExplicit RemovalReason = "explicit"

	// RemovalReclaimed means a weakly held member was reclaimed by the
	// garbage collector.
	RemovalReclaimed RemovalReason = "reclaimed"

	// RemovalCleared means the registry was emptied via RemoveAll.
	RemovalCleared RemovalReason = "cleared"
)

// MetricsRecorder records multicast registry metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordMemberAdded records a member joining a registry.
	RecordMemberAdded(ctx context.Context, registryID string)

	// RecordMembersRemoved records members leaving a registry, with the
	// reason they left.
	RecordMembersRemoved(ctx context.Context, registryID string, count int, reason RemovalReason)

	// RecordNotify records a completed notify pass: fan-out size,
	// duration, and error status.
	RecordNotify(ctx context.Context, registryID string, members int, duration time.Duration, err error)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	membersAdded   metric.Int64Counter
	membersRemoved metric.Int64Counter
	notifyFanout   metric.Int64Histogram
	notifyLatency  metric.Float64Histogram
	notifyErrors   metric.Int64Counter
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("multicast")

	membersAdded, err := meter.Int64Counter("multicast.members.added",
		metric.WithDescription("Number of members added to registries"),
	)
	if err != nil {
		return nil, err
	}

	membersRemoved, err := meter.Int64Counter("multicast.members.removed",
		metric.WithDescription("Number of members removed from registries"),
	)
	if err != nil {
		return nil, err
	}

	notifyFanout, err := meter.Int64Histogram("multicast.notify.fanout",
		metric.WithDescription("Members reached per notify pass"),
	)
	if err != nil {
		return nil, err
	}

	notifyLatency, err := meter.Float64Histogram("multicast.notify.latency_ms",
		metric.WithDescription("Notify pass latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	notifyErrors, err := meter.Int64Counter("multicast.notify.errors",
		metric.WithDescription("Number of notify passes that reported callback errors"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		membersAdded:   membersAdded,
		membersRemoved: membersRemoved,
		notifyFanout:   notifyFanout,
		notifyLatency:  notifyLatency,
		notifyErrors:   notifyErrors,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder backed by the global OTel
// meter provider. Configure the provider before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
//
// Falls back to NoopMetrics if instrument creation fails.
func NewMetricsRecorder() MetricsRecorder {
	m, err := newOtelMetrics()
	if err != nil {
		return NoopMetrics{}
	}
	return m
}

// RecordMemberAdded records a member joining a registry.
func (m *otelMetrics) RecordMemberAdded(ctx context.Context, registryID string) {
	m.membersAdded.Add(ctx, 1, metric.WithAttributes(
		attribute.String("registry.id", registryID),
	))
}

// RecordMembersRemoved records members leaving a registry.
func (m *otelMetrics) RecordMembersRemoved(ctx context.Context, registryID string, count int, reason RemovalReason) {
	if count <= 0 {
		return
	}
	m.membersRemoved.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String("registry.id", registryID),
		attribute.String("removal.reason", string(reason)),
	))
}

// RecordNotify records a completed notify pass.
func (m *otelMetrics) RecordNotify(ctx context.Context, registryID string, members int, duration time.Duration, err error) {
	attrs := metric.WithAttributes(
		attribute.String("registry.id", registryID),
	)
	m.notifyFanout.Record(ctx, int64(members), attrs)
	m.notifyLatency.Record(ctx, float64(duration.Microseconds())/1000.0, attrs)
	if err != nil {
		m.notifyErrors.Add(ctx, 1, attrs)
	}
}

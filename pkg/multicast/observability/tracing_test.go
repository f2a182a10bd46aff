package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupTracingTest installs an in-memory span exporter and returns it.
func setupTracingTest(t *testing.T) *tracetest.InMemoryExporter {
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	originalProvider := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)

	t.Cleanup(func() {
		otel.SetTracerProvider(originalProvider)
		if err := provider.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down tracer provider: %v", err)
		}
	})

	return exporter
}

// findAttribute returns the value for a key in a span's attributes.
func findAttribute(attrs []attribute.KeyValue, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range attrs {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestStartNotifySpan(t *testing.T) {
	exporter := setupTracingTest(t)
	sm := NewSpanManager()

	_, span := sm.StartNotifySpan(context.Background(), "mcast-test", 3)
	sm.EndSpanWithError(span, nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "multicast.notify", spans[0].Name)

	id, ok := findAttribute(spans[0].Attributes, "registry.id")
	require.True(t, ok, "expected registry.id attribute")
	assert.Equal(t, "mcast-test", id.AsString())

	members, ok := findAttribute(spans[0].Attributes, "notify.members")
	require.True(t, ok, "expected notify.members attribute")
	assert.Equal(t, int64(3), members.AsInt64())

	assert.Equal(t, codes.Ok, spans[0].Status.Code)
}

func TestEndSpanWithError(t *testing.T) {
	exporter := setupTracingTest(t)
	sm := NewSpanManager()

	_, span := sm.StartNotifySpan(context.Background(), "mcast-test", 1)
	sm.EndSpanWithError(span, errors.New("callback failed"))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	require.Len(t, spans[0].Events, 1, "expected recorded error event")
}

func TestEndSpanWithError_NilSpan(t *testing.T) {
	sm := NewSpanManager()
	assert.NotPanics(t, func() {
		sm.EndSpanWithError(nil, errors.New("fail"))
	})
}

func TestAddSpanEvent(t *testing.T) {
	exporter := setupTracingTest(t)
	sm := NewSpanManager()

	ctx, span := sm.StartNotifySpan(context.Background(), "mcast-test", 1)
	sm.AddSpanEvent(ctx, "member.skipped", attribute.Int("member.index", 2))
	sm.EndSpanWithError(span, nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.Len(t, spans[0].Events, 1)
	assert.Equal(t, "member.skipped", spans[0].Events[0].Name)
}

package observability

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestLogger returns a debug-level JSON logger writing into buf.
func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestEnrichLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf)

	enriched := EnrichLogger(logger, "mcast-a1b2c3d4")
	require.NotNil(t, enriched)

	enriched.Info("observer attached")
	assert.Contains(t, buf.String(), "mcast-a1b2c3d4")
	assert.Contains(t, buf.String(), "registry_id")
}

func TestEnrichLogger_Nil(t *testing.T) {
	assert.Nil(t, EnrichLogger(nil, "mcast-test"))
}

func TestLogNotifyLifecycle(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf)

	LogNotifyStart(logger, "mcast-test", 3)
	LogNotifyComplete(logger, "mcast-test", 3, 1.25)

	out := buf.String()
	assert.Contains(t, out, "notify pass starting")
	assert.Contains(t, out, "notify pass completed")
	assert.Contains(t, out, "duration_ms")
}

func TestLogNotifyError(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf)

	LogNotifyError(logger, "mcast-test", 1, errors.New("observer exploded"))

	out := buf.String()
	assert.Contains(t, out, "member callback failed")
	assert.Contains(t, out, "observer exploded")
	assert.Contains(t, out, "member_index")
}

func TestLogMemberReclaimed(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf)

	LogMemberReclaimed(logger, "mcast-test")
	assert.Contains(t, buf.String(), "reclaimed member dropped")
}

func TestLogCapacityReached(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf)

	LogCapacityReached(logger, "mcast-test", 16)
	assert.Contains(t, buf.String(), "member limit reached")
}

func TestLogHelpers_NilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		LogNotifyStart(nil, "mcast-test", 1)
		LogNotifyComplete(nil, "mcast-test", 1, 0.5)
		LogNotifyError(nil, "mcast-test", 0, errors.New("fail"))
		LogMemberReclaimed(nil, "mcast-test")
		LogCapacityReached(nil, "mcast-test", 1)
	})
}

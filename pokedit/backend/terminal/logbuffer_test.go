package terminal

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogBufferFlushOrder(t *testing.T) {
	lb := newLogBuffer(3)
	for _, msg := range []string{"one", "two", "three"} {
		lb.add(logEntry{time: time.Now(), level: slog.LevelInfo, message: msg})
	}

	var out strings.Builder
	lb.flush(&out)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "one")
	assert.Contains(t, lines[2], "three")

	// Flushing empties the buffer.
	out.Reset()
	lb.flush(&out)
	assert.Empty(t, out.String())
}

func TestLogBufferOverwritesOldest(t *testing.T) {
	lb := newLogBuffer(2)
	for _, msg := range []string{"a", "b", "c"} {
		lb.add(logEntry{time: time.Now(), level: slog.LevelInfo, message: msg})
	}

	var out strings.Builder
	lb.flush(&out)

	assert.NotContains(t, out.String(), " a\n")
	assert.Contains(t, out.String(), "b")
	assert.Contains(t, out.String(), "c")
}

func TestLogBufferHandlerCapturesAttrs(t *testing.T) {
	lb := newLogBuffer(4)
	handler := &logBufferHandler{buffer: lb, level: slog.LevelInfo}

	assert.False(t, handler.Enabled(context.Background(), slog.LevelDebug))

	logger := slog.New(handler)
	logger.Info("frame presented", "count", 7)

	var out strings.Builder
	lb.flush(&out)
	assert.Contains(t, out.String(), "frame presented count=7")
	assert.Contains(t, out.String(), "INF")
}

package terminal

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

// logEntry is one captured log record.
type logEntry struct {
	time    time.Time
	level   slog.Level
	message string
}

// logBuffer is a thread-safe ring buffer for log entries. While the tcell
// screen owns the tty, writing logs to stderr would corrupt the display, so
// the surface captures them here and flushes on cleanup.
type logBuffer struct {
	entries []logEntry
	index   int
	count   int
	mu      sync.Mutex
}

func newLogBuffer(size int) *logBuffer {
	return &logBuffer{entries: make([]logEntry, size)}
}

func (lb *logBuffer) add(entry logEntry) {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	lb.entries[lb.index] = entry
	lb.index = (lb.index + 1) % len(lb.entries)
	if lb.count < len(lb.entries) {
		lb.count++
	}
}

// flush writes the buffered entries to w in arrival order and empties the
// buffer.
func (lb *logBuffer) flush(w io.Writer) {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	for i := 0; i < lb.count; i++ {
		entry := lb.entries[(lb.index-lb.count+i+len(lb.entries))%len(lb.entries)]
		fmt.Fprintf(w, "%s %s %s\n",
			entry.time.Format("15:04:05"), levelTag(entry.level), entry.message)
	}
	lb.count = 0
	lb.index = 0
}

func levelTag(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERR"
	case level >= slog.LevelWarn:
		return "WRN"
	case level >= slog.LevelInfo:
		return "INF"
	default:
		return "DBG"
	}
}

// logBufferHandler is a slog.Handler that captures records into a logBuffer.
type logBufferHandler struct {
	buffer *logBuffer
	level  slog.Level
}

func (h *logBufferHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *logBufferHandler) Handle(_ context.Context, record slog.Record) error {
	message := record.Message
	record.Attrs(func(a slog.Attr) bool {
		message += fmt.Sprintf(" %s=%v", a.Key, a.Value)
		return true
	})

	h.buffer.add(logEntry{
		time:    record.Time,
		level:   record.Level,
		message: message,
	})
	return nil
}

func (h *logBufferHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h *logBufferHandler) WithGroup(string) slog.Handler { return h }

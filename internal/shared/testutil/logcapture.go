// Package testutil provides test helpers shared across packages.
package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// LogRecord is one captured log call with its attributes flattened,
// including those added through Logger.With.
type LogRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// logSink is shared by a capture handler and every handler derived from it
type logSink struct {
	mu      sync.Mutex
	records []LogRecord
}

// LogCapture is a slog.Handler that records every log call
type LogCapture struct {
	sink  *logSink
	attrs []slog.Attr
	t     testing.TB
}

// NewLogCapture returns a logger whose output is recorded by the returned capture.
// Records are echoed through t.Logf when t is non-nil.
func NewLogCapture(t testing.TB) (*slog.Logger, *LogCapture) {
	capture := &LogCapture{sink: &logSink{}, t: t}
	return slog.New(capture), capture
}

// Enabled captures every level
func (c *LogCapture) Enabled(context.Context, slog.Level) bool {
	return true
}

// Handle implements slog.Handler
func (c *LogCapture) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any, len(c.attrs)+r.NumAttrs())
	for _, a := range c.attrs {
		attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	c.sink.mu.Lock()
	c.sink.records = append(c.sink.records, LogRecord{Level: r.Level, Message: r.Message, Attrs: attrs})
	c.sink.mu.Unlock()

	if c.t != nil {
		c.t.Logf("[%s] %s %v", r.Level, r.Message, attrs)
	}
	return nil
}

// WithAttrs implements slog.Handler
func (c *LogCapture) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(c.attrs)+len(attrs))
	merged = append(merged, c.attrs...)
	merged = append(merged, attrs...)
	return &LogCapture{sink: c.sink, attrs: merged, t: c.t}
}

// WithGroup ignores groups; attributes stay flat
func (c *LogCapture) WithGroup(string) slog.Handler {
	return c
}

// Records returns a copy of everything captured so far
func (c *LogCapture) Records() []LogRecord {
	c.sink.mu.Lock()
	defer c.sink.mu.Unlock()

	records := make([]LogRecord, len(c.sink.records))
	copy(records, c.sink.records)
	return records
}

// Find returns the first record whose message contains message
func (c *LogCapture) Find(message string) (LogRecord, bool) {
	for _, r := range c.Records() {
		if strings.Contains(r.Message, message) {
			return r, true
		}
	}
	return LogRecord{}, false
}

// CountLevel returns how many records were logged at level
func (c *LogCapture) CountLevel(level slog.Level) int {
	n := 0
	for _, r := range c.Records() {
		if r.Level == level {
			n++
		}
	}
	return n
}

// Package log provides testing utilities for structured logging.
//
// This file contains a capture logger for verifying log output in tests
// without touching the process-wide slog default.

package log

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// CapturedRecord is a single log record captured by TestLogger.
type CapturedRecord struct {
	Level   Level
	Message string
	Fields  []any
}

// TestLogger is a Logger implementation designed for tests.
// It records every log call in memory for later inspection.
type TestLogger struct {
	mu      sync.Mutex
	level   Level
	fields  []any
	records *[]CapturedRecord
}

// NewTestLogger creates a TestLogger capturing records at or above level.
//
// Example:
//
//	logger := log.NewTestLogger(log.LevelDebug)
//	logger.Info("fit complete", log.SamplesKey, 93)
//	if len(logger.Records()) != 1 { ... }
func NewTestLogger(level Level) *TestLogger {
	records := make([]CapturedRecord, 0, 16)
	return &TestLogger{level: level, records: &records}
}

// Records returns a copy of all captured records.
func (t *TestLogger) Records() []CapturedRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]CapturedRecord, len(*t.records))
	copy(out, *t.records)
	return out
}

// Contains reports whether any captured message contains the substring.
func (t *TestLogger) Contains(substr string) bool {
	for _, r := range t.Records() {
		if strings.Contains(r.Message, substr) {
			return true
		}
	}
	return false
}

func (t *TestLogger) capture(level Level, msg string, fields ...any) {
	if level < t.level {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	merged := make([]any, 0, len(t.fields)+len(fields))
	merged = append(merged, t.fields...)
	merged = append(merged, fields...)
	*t.records = append(*t.records, CapturedRecord{Level: level, Message: msg, Fields: merged})
}

// Debug implements Logger.Debug.
func (t *TestLogger) Debug(msg string, fields ...any) { t.capture(LevelDebug, msg, fields...) }

// Info implements Logger.Info.
func (t *TestLogger) Info(msg string, fields ...any) { t.capture(LevelInfo, msg, fields...) }

// Warn implements Logger.Warn.
func (t *TestLogger) Warn(msg string, fields ...any) { t.capture(LevelWarn, msg, fields...) }

// Error implements Logger.Error.
func (t *TestLogger) Error(msg string, fields ...any) { t.capture(LevelError, msg, fields...) }

// With implements Logger.With; the child shares the parent's record store.
func (t *TestLogger) With(fields ...any) Logger {
	t.mu.Lock()
	defer t.mu.Unlock()
	merged := make([]any, 0, len(t.fields)+len(fields))
	merged = append(merged, t.fields...)
	merged = append(merged, fields...)
	return &TestLogger{level: t.level, fields: merged, records: t.records}
}

// Enabled implements Logger.Enabled.
func (t *TestLogger) Enabled(_ context.Context, level Level) bool {
	return level >= t.level
}

// String renders the captured records, useful in test failure messages.
func (t *TestLogger) String() string {
	var b strings.Builder
	for _, r := range t.Records() {
		fmt.Fprintf(&b, "[%s] %s %v\n", r.Level, r.Message, r.Fields)
	}
	return b.String()
}

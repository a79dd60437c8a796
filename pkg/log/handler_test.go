package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	tserrors "github.com/YuminosukeSato/tslearn/pkg/errors"
)

// newJSONCapture builds the production handler stack over an in-memory
// buffer so tests can inspect the emitted JSON records.
func newJSONCapture() (Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	handler := WrapByErrFmtHandler(slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	return &slogLogger{l: slog.New(handler)}, &buf
}

func decodeRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("cannot decode log record %q: %v", buf.String(), err)
	}
	return record
}

func TestErrFmtHandlerAddsStacktrace(t *testing.T) {
	logger, buf := newJSONCapture()

	err := tserrors.New("training diverged")
	logger.Error("fit failed", err, IterationKey, 42)

	record := decodeRecord(t, buf)

	if record["msg"] != "fit failed" {
		t.Errorf("msg = %v, want %q", record["msg"], "fit failed")
	}
	if errVal, ok := record[ErrAttrKey].(string); !ok || !strings.Contains(errVal, "training diverged") {
		t.Errorf("error attribute = %v, want message containing %q", record[ErrAttrKey], "training diverged")
	}

	stack, ok := record[StacktraceAttrKey].(string)
	if !ok || stack == "" {
		t.Fatalf("expected non-empty %s attribute, record = %v", StacktraceAttrKey, record)
	}
	if !strings.Contains(stack, "TestErrFmtHandlerAddsStacktrace") {
		t.Errorf("stacktrace does not mention the capture site:\n%s", stack)
	}
}

func TestErrFmtHandlerPlainError(t *testing.T) {
	logger, buf := newJSONCapture()

	// A bare error carries no stack information, so no stacktrace
	// attribute is added.
	logger.Error("fit failed", fmt.Errorf("plain failure"))

	record := decodeRecord(t, buf)
	if _, ok := record[StacktraceAttrKey]; ok {
		t.Errorf("unexpected %s attribute for stackless error: %v", StacktraceAttrKey, record)
	}
}

func TestErrFmtHandlerWithoutError(t *testing.T) {
	logger, buf := newJSONCapture()

	logger.Info("Training started", EpochKey, 0, LossKey, 1.5)

	record := decodeRecord(t, buf)
	if record["msg"] != "Training started" {
		t.Errorf("msg = %v, want %q", record["msg"], "Training started")
	}
	if _, ok := record[StacktraceAttrKey]; ok {
		t.Errorf("unexpected %s attribute on error-free record", StacktraceAttrKey)
	}
	if record[LossKey] != 1.5 {
		t.Errorf("%s = %v, want 1.5", LossKey, record[LossKey])
	}
}

func TestErrFmtHandlerWithAttrsKeepsWrapping(t *testing.T) {
	logger, buf := newJSONCapture()

	// With routes through Handler.WithAttrs; the stacktrace extraction
	// must survive the derived handler.
	child := logger.With(ComponentKey, "rnn.trainer")
	child.Error("fit failed", tserrors.New("boom"))

	record := decodeRecord(t, buf)
	if record[ComponentKey] != "rnn.trainer" {
		t.Errorf("%s = %v, want %q", ComponentKey, record[ComponentKey], "rnn.trainer")
	}
	if stack, ok := record[StacktraceAttrKey].(string); !ok || stack == "" {
		t.Errorf("expected stacktrace attribute on derived logger, record = %v", record)
	}
}

func TestSetupLoggerLevel(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	SetupLogger("warn")

	ctx := context.Background()
	logger := GetLoggerWithName("test")
	if logger.Enabled(ctx, LevelInfo) {
		t.Error("info should be disabled at warn level")
	}
	if !logger.Enabled(ctx, LevelWarn) {
		t.Error("warn should be enabled at warn level")
	}

	SetupLogger("debug")
	if !GetLogger().Enabled(ctx, LevelDebug) {
		t.Error("debug should be enabled at debug level")
	}
}

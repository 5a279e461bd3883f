package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleHandlerFormatsComponentAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	scoped := NewComponentLogger(logger, "scanner")
	scoped.Info("library scanned", Args(String("library", "Movies"), Int("collections", 3))...)

	out := buf.String()
	if !strings.Contains(out, "INFO scanner: library scanned") {
		t.Fatalf("unexpected line: %q", out)
	}
	if !strings.Contains(out, "library=Movies") || !strings.Contains(out, "collections=3") {
		t.Fatalf("missing attrs: %q", out)
	}
}

func TestConsoleHandlerQuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("classified", String("collection", "Box Sets"))
	if !strings.Contains(buf.String(), `collection="Box Sets"`) {
		t.Fatalf("expected quoted value, got %q", buf.String())
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be suppressed: %q", out)
	}
	if !strings.Contains(out, "WARN shown") {
		t.Fatalf("warn line missing: %q", out)
	}
}

func TestJSONFormatLowercasesLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Error("delete failed", Error(errors.New("boom")))
	out := buf.String()
	if !strings.Contains(out, `"level":"error"`) {
		t.Fatalf("expected lowercase level, got %q", out)
	}
	if !strings.Contains(out, `"error":"boom"`) {
		t.Fatalf("expected error attr, got %q", out)
	}
}

func TestUnsupportedFormatRejected(t *testing.T) {
	if _, err := New(Options{Format: "logfmt"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := NewNop()
	if logger.Enabled(t.Context(), slog.LevelError) {
		t.Fatal("nop logger should report disabled")
	}
}

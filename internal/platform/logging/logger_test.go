package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_ContextAddsTraceIDs(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(LevelDebug)
	logger := FromZap(zap.New(core))

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.InfoContext(ctx, "standings warmed", "leagues", 3)
	logger.Warn("no trace", "error", errors.New("boom"))

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	fields := entries[0].ContextMap()
	if fields["trace_id"] != traceID.String() || fields["span_id"] != spanID.String() {
		t.Fatalf("missing trace fields: %+v", fields)
	}
	if fields["leagues"] != int64(3) {
		t.Fatalf("unexpected leagues field: %#v", fields["leagues"])
	}

	plain := entries[1].ContextMap()
	if _, ok := plain["trace_id"]; ok {
		t.Fatalf("unexpected trace id without span: %+v", plain)
	}
	if plain["error"] != "boom" {
		t.Fatalf("unexpected error field: %#v", plain["error"])
	}
}

func TestLogger_OddArgsAndNonStringKeys(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(LevelDebug)
	logger := FromZap(zap.New(core)).With("component", "test")

	logger.Debug("odd", 42, "x", "dangling")

	fields := logs.All()[0].ContextMap()
	if fields["component"] != "test" {
		t.Fatalf("missing With field: %+v", fields)
	}
	if fields["arg"] != "x" {
		t.Fatalf("expected non-string key to become arg: %+v", fields)
	}
	if v, ok := fields["dangling"]; !ok || v != nil {
		t.Fatalf("expected dangling key with nil value: %+v", fields)
	}
}

func TestNewJSON_WritesLevelFilteredLines(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewJSON(LevelWarn, &buf)
	logger.Info("dropped")
	logger.Named("httpapi").Warn("kept", "status", 503)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d: %s", len(lines), buf.String())
	}

	var decoded map[string]any
	if err := sonic.UnmarshalString(lines[0], &decoded); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if decoded["msg"] != "kept" || decoded["level"] != "WARN" || decoded["logger"] != "httpapi" {
		t.Fatalf("unexpected line: %+v", decoded)
	}
	if caller, _ := decoded["caller"].(string); !strings.Contains(caller, "logger_test.go") {
		t.Fatalf("expected caller in test file, got %q", caller)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]Level{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for raw, want := range cases {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("ParseLevel(%q)=%v want %v", raw, got, want)
		}
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	t.Parallel()

	var logger *Logger
	logger.Info("no panic")
	logger.ErrorContext(context.Background(), "still no panic")
	if logger.Named("x") == nil || logger.With("k", "v") == nil {
		t.Fatalf("expected nop loggers from nil receiver")
	}
}

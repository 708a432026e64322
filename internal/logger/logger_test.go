package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestSetupFormats(t *testing.T) {
	var buf bytes.Buffer
	Setup("prod", &buf).Info("hello", slog.Int("n", 1))
	if !strings.HasPrefix(buf.String(), "{") {
		t.Fatalf("expected JSON output in prod, got %q", buf.String())
	}

	buf.Reset()
	Setup("dev", &buf).Info("hello", slog.Int("n", 1))
	if !strings.Contains(buf.String(), "msg=hello") {
		t.Fatalf("expected text output in dev, got %q", buf.String())
	}
}

func TestSetupLevels(t *testing.T) {
	var buf bytes.Buffer
	if Setup("prod", &buf).Enabled(context.Background(), slog.LevelDebug) {
		t.Fatalf("expected debug to be disabled in prod")
	}
	if !Setup("staging", &buf).Enabled(context.Background(), slog.LevelDebug) {
		t.Fatalf("expected debug to be enabled in staging")
	}
	if !Setup("anything", &buf).Enabled(context.Background(), slog.LevelDebug) {
		t.Fatalf("expected unknown env to fall back to dev")
	}
}

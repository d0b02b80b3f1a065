package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestMultiHandler_FansOutToEnabledHandlersOnly(t *testing.T) {
	var infoBuf, errBuf bytes.Buffer
	infoHandler := slog.NewJSONHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo})
	errHandler := slog.NewJSONHandler(&errBuf, &slog.HandlerOptions{Level: slog.LevelError})

	logger := slog.New(NewMultiHandler(infoHandler, errHandler))

	logger.Info("routine message")
	logger.Error("broken thing", "error", "boom")

	if !strings.Contains(infoBuf.String(), "routine message") {
		t.Error("info handler missed an info record")
	}
	if strings.Contains(errBuf.String(), "routine message") {
		t.Error("error-level handler received an info record")
	}
	if !strings.Contains(errBuf.String(), "broken thing") {
		t.Error("error handler missed an error record")
	}
}

func TestMultiHandler_EnabledWhenAnyHandlerIs(t *testing.T) {
	errOnly := slog.NewJSONHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError})
	m := NewMultiHandler(errOnly)

	if m.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("Enabled(INFO) = true with only an error-level handler")
	}
	if !m.Enabled(context.Background(), slog.LevelError) {
		t.Error("Enabled(ERROR) = false with an error-level handler")
	}
}

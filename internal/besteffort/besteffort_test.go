package besteffort

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/cliniclink/cliniclink/internal/logging"
)

func TestDo_SwallowsError(t *testing.T) {
	called := false
	Do(context.Background(), nil, "noop", func() error {
		called = true
		return errors.New("boom")
	})
	if !called {
		t.Fatalf("expected wrapped function to run")
	}
}

func TestDo_LogsFailureWhenLoggerPresent(t *testing.T) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	log := logging.NewSlogLogger(slog.New(h))

	Do(context.Background(), log, "server logout", func() error {
		return errors.New("connection refused")
	})

	out := buf.String()
	if !strings.Contains(out, "server logout") || !strings.Contains(out, "connection refused") {
		t.Fatalf("expected failure to be logged, got:\n%s", out)
	}
}

func TestDo_SilentOnSuccess(t *testing.T) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	log := logging.NewSlogLogger(slog.New(h))

	Do(context.Background(), log, "noop", func() error { return nil })

	if buf.Len() != 0 {
		t.Fatalf("expected no output on success, got:\n%s", buf.String())
	}
}

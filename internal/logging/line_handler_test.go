package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestLineHandlerHoistsComponentAndTitle(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newLineHandler(&buf, slog.LevelInfo, false))

	NewComponentLogger(logger, "catalog").Info("movie added", Title("The Big Lebowski"), Float64("rating", 8.1))

	out := buf.String()
	if !strings.Contains(out, `INFO [catalog] movie added "The Big Lebowski" rating=8.1`) {
		t.Fatalf("unexpected line %q", out)
	}
	if strings.Contains(out, "component=") || strings.Contains(out, "title=") {
		t.Fatalf("hoisted fields repeated as pairs: %q", out)
	}
}

func TestLineHandlerQuotesAndGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newLineHandler(&buf, slog.LevelInfo, false))

	logger.WithGroup("store").Warn("save failed", Error(errors.New("disk full")), String("path", "/tmp/a b"))

	out := buf.String()
	for _, want := range []string{`WARN save failed`, `store.error="disk full"`, `store.path="/tmp/a b"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestLineHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newLineHandler(&buf, slog.LevelWarn, false))
	logger.Info("quiet")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered, got %q", buf.String())
	}
}

func TestNewSessionIDIsUUID(t *testing.T) {
	id := NewSessionID()
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("NewSessionID() = %q, not a uuid: %v", id, err)
	}
	if id == NewSessionID() {
		t.Fatal("expected distinct session ids")
	}
}

package logger

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestNew_TextFormat_IncludesFieldsAndApp(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatText, App: "pawsense", Output: &buf})

	l.With(map[string]any{"session_id": "s-1"}).Info("scan published", map[string]any{
		"label": "Happy",
		"err":   errors.New("boom"),
	})

	out := buf.String()
	for _, want := range []string{"app=pawsense", "session_id=s-1", "label=Happy", "err=boom", "level=INFO"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got: %s", want, out)
		}
	}
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Debug, Format: FormatJSON, Output: &buf})
	l.Debug("json check", nil)

	if !strings.Contains(buf.String(), `"level":"DEBUG"`) {
		t.Fatalf("expected json debug line, got: %s", buf.String())
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Warn, Output: &buf})
	l.Info("hidden", nil)
	l.Warn("shown", nil)

	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("info line should be filtered at warn level: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("warn line missing: %s", buf.String())
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	if ParseLevel("WARNING") != Warn || ParseLevel("nope") != Info || ParseLevel("") != Info {
		t.Fatalf("unexpected ParseLevel results")
	}
	if ParseFormat(" JSON ") != FormatJSON || ParseFormat("xml") != FormatText {
		t.Fatalf("unexpected ParseFormat results")
	}
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Output: &buf})
	ctx := WithContext(context.Background(), l.With(map[string]any{"request_id": "r-9"}))

	FromContext(ctx, Nop()).Info("hello", nil)
	if !strings.Contains(buf.String(), "request_id=r-9") {
		t.Fatalf("expected context logger to be used, got: %s", buf.String())
	}

	if FromContext(context.Background(), nil) == nil {
		t.Fatalf("expected non-nil fallback logger")
	}
}

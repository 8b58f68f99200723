package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %s, %v; want %s", in, got, err, want)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatalf("expected an error for an unknown level")
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("", FormatConsole); err != nil || f != FormatConsole {
		t.Fatalf("empty must select the fallback, got %s, %v", f, err)
	}
	if f, err := ParseFormat("JSON", FormatConsole); err != nil || f != FormatJSON {
		t.Fatalf("expected json, got %s, %v", f, err)
	}
	if _, err := ParseFormat("xml", FormatJSON); err == nil {
		t.Fatalf("expected an error for an unknown format")
	}
}

func TestNew_ComponentAndLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "warn", Output: &buf, Component: "web"})
	log.Info().Msg("dropped")
	log.Warn().Msg("kept")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected a single json line, got %q: %v", buf.String(), err)
	}
	if entry["component"] != "web" || entry["message"] != "kept" {
		t.Fatalf("unexpected entry %v", entry)
	}
	if _, ok := entry["caller"]; ok {
		t.Fatalf("caller is only added at debug level, got %v", entry)
	}
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Format: FormatConsole, Output: &buf, Component: "cli"})
	l.Info().Msg("hello")
	if out := buf.String(); !strings.Contains(out, "hello") || strings.HasPrefix(out, "{") {
		t.Fatalf("expected console output, got %q", out)
	}
}

func TestInit_InstallsContextLogger(t *testing.T) {
	reset()
	t.Cleanup(reset)

	var first, second bytes.Buffer
	Init(Options{Output: &first, Component: "web"})
	Init(Options{Output: &second, Component: "cli"})

	zerolog.Ctx(context.Background()).Info().Msg("via context")
	if second.Len() != 0 {
		t.Fatalf("only the first Init may take effect, second got %q", second.String())
	}
	if !strings.Contains(first.String(), `"component":"web"`) {
		t.Fatalf("expected the process logger behind zerolog.Ctx, got %q", first.String())
	}
}

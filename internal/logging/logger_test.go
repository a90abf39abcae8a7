package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		" DEBUG ": zerolog.DebugLevel,
		"warn":    zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"info":    zerolog.InfoLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestComponentTagsOutput(t *testing.T) {
	l := NewNopLogger()
	var buf bytes.Buffer
	l.SetOutput(&buf)

	l.Component("logdir").Info().Msg("hello")

	out := buf.String()
	if !strings.Contains(out, `"component":"logdir"`) || !strings.Contains(out, `"message":"hello"`) {
		t.Errorf("unexpected output %q", out)
	}
}

func TestEnableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logaccess.log")

	l := NewNopLogger()
	l.EnableFile(FileConfig{Path: path})
	l.Warn().Str("origin", "http://evil.com").Msg("Origin not whitelisted")
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Origin not whitelisted") {
		t.Errorf("log file missing entry: %q", data)
	}
}

func TestEnableFileEmptyPath(t *testing.T) {
	l := NewNopLogger()
	l.EnableFile(FileConfig{})
	if l.file != nil {
		t.Error("empty path should not open a file")
	}
	if err := l.Close(); err != nil {
		t.Error(err)
	}
}

func TestDebugHiddenAtDefaultLevel(t *testing.T) {
	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Fatalf("GlobalLevel() = %v, want info", zerolog.GlobalLevel())
	}

	l := NewNopLogger()
	var buf bytes.Buffer
	l.SetOutput(&buf)

	l.Debug().Msg("hidden")
	l.Info().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("unexpected output %q", out)
	}
}

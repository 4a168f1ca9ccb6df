package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{" warn ", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"loud", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestInitWritesJSONToOutput(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	log := Init(Options{Level: "debug", Output: &buf})
	log.Debug().Str("room", "general").Msg("joined")

	if !strings.Contains(buf.String(), `"room":"general"`) {
		t.Errorf("output = %q, want room field", buf.String())
	}
}

func TestInitOnlyOnce(t *testing.T) {
	Reset()
	defer Reset()

	var first, second bytes.Buffer
	Init(Options{Output: &first})
	Init(Options{Output: &second})
	lg := Get()
	lg.Info().Msg("hello")

	if first.Len() == 0 || second.Len() != 0 {
		t.Errorf("first=%q second=%q, want only first written", first.String(), second.String())
	}
}

func TestInitFile(t *testing.T) {
	Reset()
	defer Reset()

	path := filepath.Join(t.TempDir(), "logs", "jobportal.log")
	Init(Options{File: path})
	lg := Get()
	lg.Info().Msg("to file")
	if err := Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("log file = %q, want message", string(data))
	}
}

func TestGetBeforeInitIsNop(t *testing.T) {
	Reset()
	log := Get()
	log.Info().Msg("dropped") // must not panic
}

package tui

import (
	"strings"
	"testing"
)

func TestEditRuneAddCharacters(t *testing.T) {
	tests := []struct {
		name  string
		start string
		key   string
		want  string
	}{
		{"append to empty", "", "a", "a"},
		{"append letter", "pun", "e", "pune"},
		{"append space", "hello", " ", "hello "},
		{"space key name", "hello", "space", "hello "},
		{"append devanagari", "नम", "स", "नमस"},
		{"ignores enter", "abc", "enter", "abc"},
		{"ignores arrows", "abc", "left", "abc"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := editRune(tc.start, tc.key)
			if got != tc.want {
				t.Errorf("editRune(%q, %q) = %q, want %q", tc.start, tc.key, got, tc.want)
			}
		})
	}
}

func TestEditRuneBackspace(t *testing.T) {
	tests := []struct {
		name  string
		start string
		want  string
	}{
		{"single char", "a", ""},
		{"longer string", "hello", "hell"},
		{"empty does nothing", "", ""},
		{"multibyte rune", "₹500₹", "₹500"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := editRune(tc.start, "backspace")
			if got != tc.want {
				t.Errorf("editRune(%q, backspace) = %q, want %q", tc.start, got, tc.want)
			}
		})
	}
}

func TestEditRuneMaxLength(t *testing.T) {
	full := strings.Repeat("x", maxInputLen)
	if got := editRune(full, "y"); got != full {
		t.Error("input grew past maxInputLen")
	}
	if got := editRune(full, " "); got != full {
		t.Error("space grew input past maxInputLen")
	}
}

func TestTruncateToHeight(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"a\nb\nc\n", 2, "a\nb\n"},
		{"a\nb\n", 5, "a\nb\n"},
		{"a\nb\n", 0, "a\nb\n"},
		{"single", 1, "single"},
	}
	for _, tc := range tests {
		if got := truncateToHeight(tc.in, tc.max); got != tc.want {
			t.Errorf("truncateToHeight(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
	}
}

func TestRenderTextInput(t *testing.T) {
	if got := renderTextInput("", "Type a message...", false); !strings.Contains(got, "Type a message...") {
		t.Errorf("placeholder missing: %q", got)
	}
	if got := renderTextInput("hi", "Type a message...", true); !strings.Contains(got, "hi") || !strings.Contains(got, "█") {
		t.Errorf("focused input missing value or cursor: %q", got)
	}
}

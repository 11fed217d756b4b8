package render

import (
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "loop.mp3", "loop.mp3"},
		{"control chars", "lo\x1b[2Jop.mp3", "lo[2Jop.mp3"},
		{"newline", "a\nb", "ab"},
		{"tab kept", "a\tb", "a\tb"},
		{"invalid utf8", "a\xffb", "ab"},
		{"unicode kept", "musique-d'attente-é.mp3", "musique-d'attente-é.mp3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"no truncation needed", "hello", 10, "hello"},
		{"exact fit", "hello", 5, "hello"},
		{"truncation with ellipsis", "hello world", 8, "hello..."},
		{"empty string", "", 10, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.input, tt.maxWidth)
			if got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestTruncateLeft(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"fits", "/a/b.mp3", 20, "/a/b.mp3"},
		{"keeps tail", "/home/user/music/loop.mp3", 10, "…/loop.mp3"},
		{"width one", "/a/b.mp3", 1, "…"},
		{"width zero", "/a/b.mp3", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateLeft(tt.input, tt.maxWidth); got != tt.want {
				t.Errorf("TruncateLeft(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestRow(t *testing.T) {
	got := Row("left", "right", 20)
	if len(got) != 20 {
		t.Errorf("Row length = %d, want 20", len(got))
	}
	if !strings.HasPrefix(got, "left") || !strings.HasSuffix(got, "right") {
		t.Errorf("Row = %q", got)
	}

	if got := Row("left", "right", 5); got != "left right" {
		t.Errorf("tight Row = %q, want minimum gap of 1", got)
	}
}

func TestSeparator(t *testing.T) {
	if got := Separator(10); got != "──────────" {
		t.Errorf("Separator(10) = %q", got)
	}
	if got := Separator(-1); got != "" {
		t.Errorf("Separator(-1) = %q, want empty", got)
	}
}

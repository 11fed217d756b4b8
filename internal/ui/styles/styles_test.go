package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestGradientBar_Width(t *testing.T) {
	tests := []struct {
		name   string
		filled int
		width  int
		solid  int
	}{
		{"empty", 0, 10, 0},
		{"half", 5, 10, 5},
		{"full", 10, 10, 10},
		{"overfilled clamps", 15, 10, 10},
		{"negative clamps", -3, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := ansi.Strip(GradientBar(tt.filled, tt.width, T().Primary, T().Secondary))
			if lipgloss.Width(bar) != tt.width {
				t.Errorf("bar width = %d, want %d", lipgloss.Width(bar), tt.width)
			}
			if got := strings.Count(bar, "█"); got != tt.solid {
				t.Errorf("filled cells = %d, want %d", got, tt.solid)
			}
		})
	}
}

func TestApplyBoldGradient_KeepsText(t *testing.T) {
	text := "Elevated Beats n' Slices"
	if got := ansi.Strip(ApplyBoldGradient(text, T().Primary, T().Secondary)); got != text {
		t.Errorf("stripped gradient = %q, want %q", got, text)
	}
	if got := ApplyBoldGradient("", T().Primary, T().Secondary); got != "" {
		t.Errorf("empty gradient = %q", got)
	}
}

func TestBlendColors(t *testing.T) {
	colors := blendColors(3, lipgloss.Color("#000000"), lipgloss.Color("#ffffff"))
	if len(colors) != 3 {
		t.Fatalf("len = %d, want 3", len(colors))
	}
	if colorToHex(colors[0]) == colorToHex(colors[2]) {
		t.Errorf("endpoints should differ, both %s", colorToHex(colors[0]))
	}
	if len(blendColors(1, "#123456", "#ffffff")) != 1 {
		t.Error("single color blend should return one color")
	}
}

func TestLipglossToColor_ANSIFallback(t *testing.T) {
	if got := colorToHex(lipglossToColor("240")); got != "#808080" {
		t.Errorf("ANSI fallback = %s, want #808080", got)
	}
}

// Package render provides text rendering utilities for TUI components.
package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Sanitize removes control characters (except tab) and drops invalid UTF-8
// bytes. File names can carry both.
func Sanitize(s string) string {
	if !needsSanitize(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size <= 1:
		case r != '\t' && unicode.IsControl(r):
		default:
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

func needsSanitize(s string) bool {
	for i := range len(s) {
		b := s[i]
		if b < 0x20 && b != '\t' {
			return true
		}
		if b >= 0x80 {
			return !utf8.ValidString(s) || strings.ContainsFunc(s, func(r rune) bool {
				return r != '\t' && unicode.IsControl(r)
			})
		}
	}
	return false
}

// Truncate shortens a string to fit within maxWidth, adding an ellipsis if truncated.
// Uses runewidth for proper handling of wide characters (CJK, emoji).
func Truncate(s string, maxWidth int) string {
	return runewidth.Truncate(Sanitize(s), maxWidth, "...")
}

// TruncateLeft keeps the end of s, which is the informative part of a file
// path, replacing the dropped prefix with "…".
func TruncateLeft(s string, maxWidth int) string {
	s = Sanitize(s)
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 1 {
		return strings.Repeat("…", max(maxWidth, 0))
	}
	runes := []rune(s)
	width := 1
	start := len(runes)
	for start > 0 {
		w := runewidth.RuneWidth(runes[start-1])
		if width+w > maxWidth {
			break
		}
		width += w
		start--
	}
	return "…" + string(runes[start:])
}

// Row creates a row with left and right aligned content separated by spaces.
func Row(left, right string, width int) string {
	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)
	gap := max(width-leftWidth-rightWidth, 1)
	return left + strings.Repeat(" ", gap) + right
}

// Separator creates a horizontal separator line of the specified width.
func Separator(width int) string {
	return strings.Repeat("─", max(width, 0))
}

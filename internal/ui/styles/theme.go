// Package styles holds the color palette and lipgloss styles of the TUI.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette and pre-built styles for the application.
type Theme struct {
	Primary   lipgloss.Color // Purple - title, playing
	Secondary lipgloss.Color // Gold - fading

	FgBase   lipgloss.Color // Primary text (bright)
	FgMuted  lipgloss.Color // Labels
	FgSubtle lipgloss.Color // Help, empty bar

	Border lipgloss.Color

	Error lipgloss.Color

	styles *Styles
}

// Styles contains pre-built lipgloss styles for common UI patterns.
type Styles struct {
	Base    lipgloss.Style
	Muted   lipgloss.Style
	Subtle  lipgloss.Style
	Title   lipgloss.Style
	Label   lipgloss.Style // Fixed-width field names
	Playing lipgloss.Style
	Fading  lipgloss.Style
	Error   lipgloss.Style
	Panel   lipgloss.Style
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#a78bfa"),
	Secondary: lipgloss.Color("#f1a208"),

	FgBase:   lipgloss.Color("#c0c0c0"),
	FgMuted:  lipgloss.Color("#808080"),
	FgSubtle: lipgloss.Color("#585858"),

	Border: lipgloss.Color("#585858"),

	Error: lipgloss.Color("#ff5555"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	return &Styles{
		Base:    base,
		Muted:   lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle:  lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:   base.Bold(true),
		Label:   lipgloss.NewStyle().Foreground(t.FgMuted).Width(8),
		Playing: lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		Fading:  lipgloss.NewStyle().Foreground(t.Secondary),
		Error:   lipgloss.NewStyle().Foreground(t.Error),
		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
	}
}

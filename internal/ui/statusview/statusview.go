// Package statusview renders the fade controller's status panel.
package statusview

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/beatsnslices/internal/fade"
	"github.com/llehouerou/beatsnslices/internal/ui/render"
	"github.com/llehouerou/beatsnslices/internal/ui/styles"
)

const (
	Title = "Elevated Beats n' Slices"

	minBarWidth = 10
	// label column plus " 100%"
	barOverhead = 8 + 5
)

// Status is everything the panel shows.
type Status struct {
	State     fade.State
	Source    string // preferred track for the next session
	IsDefault bool
	Session   *fade.Session
	Volume    float64
	LastError string
	Now       time.Time
}

// Render draws the panel at the given outer width.
func Render(s Status, width int) string {
	st := styles.T().S()
	inner := max(width-4, minBarWidth+barOverhead)

	lines := []string{
		styles.ApplyBoldGradient(Title, styles.T().Primary, styles.T().Secondary),
		"",
		row("State", stateStyle(s.State).Render(s.State.String())),
		row("Volume", VolumeBar(s.Volume, inner-barOverhead)),
	}

	if s.Session != nil {
		lines = append(lines,
			row("Playing", st.Base.Render(render.TruncateLeft(s.Session.SourcePath, inner-8))),
			row("Since", st.Muted.Render(humanize.RelTime(s.Session.StartedAt, s.Now, "ago", "from now"))),
		)
	}

	source := render.TruncateLeft(s.Source, inner-8-10)
	if s.IsDefault {
		source += st.Subtle.Render(" (default)")
	}
	lines = append(lines, row("Source", st.Base.Render(source)))

	if s.LastError != "" {
		lines = append(lines, "", st.Error.Render(render.Truncate(s.LastError, inner)))
	}

	return st.Panel.Width(inner + 2).Render(strings.Join(lines, "\n"))
}

// VolumeBar renders a width-cell gradient bar followed by the percentage.
func VolumeBar(volume float64, width int) string {
	width = max(width, minBarWidth)
	volume = min(max(volume, 0), 1)
	filled := int(volume*float64(width) + 0.5)
	pct := styles.T().S().Muted.Render(fmt.Sprintf(" %3d%%", int(volume*100+0.5)))
	return styles.GradientBar(filled, width, styles.T().Secondary, styles.T().Primary) + pct
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, styles.T().S().Label.Render(label), value)
}

func stateStyle(state fade.State) lipgloss.Style {
	st := styles.T().S()
	switch state {
	case fade.Playing:
		return st.Playing
	case fade.FadingIn, fade.FadingOut:
		return st.Fading
	default:
		return st.Muted
	}
}

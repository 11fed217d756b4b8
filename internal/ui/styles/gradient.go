package styles

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// ApplyBoldGradient renders bold text with a horizontal color gradient.
func ApplyBoldGradient(text string, from, to lipgloss.Color) string {
	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}
	return renderBlended(clusters, true, from, to)
}

// GradientBar renders filled cells of a width-cell bar, colored from one end
// of the gradient to the other, followed by the empty cells in subtle gray.
func GradientBar(filled, width int, from, to lipgloss.Color) string {
	filled = min(max(filled, 0), width)
	cells := make([]string, filled)
	for i := range cells {
		cells[i] = "█"
	}
	empty := lipgloss.NewStyle().Foreground(T().FgSubtle).
		Render(strings.Repeat("░", width-filled))
	return renderBlended(cells, false, from, to) + empty
}

func renderBlended(clusters []string, bold bool, from, to lipgloss.Color) string {
	if len(clusters) == 0 {
		return ""
	}
	colors := blendColors(len(clusters), from, to)

	var b strings.Builder
	for i, cluster := range clusters {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(colorToHex(colors[i])))
		if bold {
			style = style.Bold(true)
		}
		b.WriteString(style.Render(cluster))
	}
	return b.String()
}

// blendColors returns size colors blended in HCL space between from and to.
func blendColors(size int, from, to lipgloss.Color) []color.Color {
	if size < 2 {
		return []color.Color{lipglossToColor(from)}
	}

	c1, _ := colorful.MakeColor(lipglossToColor(from))
	c2, _ := colorful.MakeColor(lipglossToColor(to))

	colors := make([]color.Color, size)
	for i := range size {
		t := float64(i) / float64(size-1)
		colors[i] = c1.BlendHcl(c2, t).Clamped()
	}
	return colors
}

func lipglossToColor(c lipgloss.Color) color.Color {
	if col, err := colorful.Hex(string(c)); err == nil {
		return col
	}
	// ANSI color numbers have no hex form
	return color.RGBA{R: 128, G: 128, B: 128, A: 255}
}

func colorToHex(c color.Color) string {
	if cf, ok := c.(colorful.Color); ok {
		return cf.Hex()
	}
	cf, _ := colorful.MakeColor(c)
	return cf.Hex()
}

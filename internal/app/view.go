package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"

	"github.com/llehouerou/beatsnslices/internal/keymap"
	"github.com/llehouerou/beatsnslices/internal/ui/render"
	"github.com/llehouerou/beatsnslices/internal/ui/statusview"
	"github.com/llehouerou/beatsnslices/internal/ui/styles"
)

const (
	defaultWidth = 80
	helpSep      = " · "
)

// View renders the application UI.
func (m Model) View() string {
	width := m.Width
	if width <= 0 {
		width = defaultWidth
	}
	st := styles.T().S()

	if m.Picking {
		return pickerView(m.Picker, m.PickerKeys, m.Notice, width)
	}

	lines := []string{
		statusview.Render(m.status(), width),
		st.Subtle.Render(m.Keys.HelpLine("global", helpSep)),
	}
	if m.ShowHelp {
		lines = append(lines, st.Subtle.Render("simulate: "+m.Keys.HelpLine("simulate", helpSep)))
	}
	return strings.Join(lines, "\n")
}

func pickerView(fp filepicker.Model, keys *keymap.Resolver, notice string, width int) string {
	st := styles.T().S()
	lines := []string{
		st.Title.Render("Select MP3"),
		st.Muted.Render(render.TruncateLeft(fp.CurrentDirectory, width)),
		"",
		fp.View(),
	}
	if notice != "" {
		lines = append(lines, st.Error.Render(notice))
	}
	lines = append(lines, st.Subtle.Render("enter Choose"+helpSep+keys.HelpLine("picker", helpSep)))
	return strings.Join(lines, "\n")
}

func (m Model) status() statusview.Status {
	s := statusview.Status{
		State:     m.Controller.State(),
		Session:   m.Controller.Session(),
		Volume:    m.Controller.Volume(),
		LastError: m.Controller.LastError(),
		Now:       m.Now(),
	}
	if m.Prefs != nil {
		s.Source, _ = m.Prefs.Source()
		s.IsDefault = s.Source == m.Prefs.DefaultSource()
	}
	return s
}

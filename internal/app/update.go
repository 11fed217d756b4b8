package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/beatsnslices/internal/fade"
	"github.com/llehouerou/beatsnslices/internal/keymap"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case CallMsg:
		if msg.Fn != nil {
			msg.Fn()
		}
		return m, nil

	case RefreshMsg:
		return m, refreshCmd()

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		var cmd tea.Cmd
		m.Picker, cmd = m.Picker.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.Picking {
			return m.handlePickerKey(msg)
		}
		return m.handleKey(msg)
	}

	// Directory listings and other picker-internal messages
	var cmd tea.Cmd
	m.Picker, cmd = m.Picker.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.Notice = ""

	switch m.Keys.Resolve(msg.String()) {
	case keymap.ActionQuit:
		return m, tea.Quit
	case keymap.ActionHelp:
		m.ShowHelp = !m.ShowHelp
	case keymap.ActionSelectSource:
		m.Picking = true
		m.Picker = newPicker(startDir(m.Prefs))
		if m.Height > 0 {
			m.Picker, _ = m.Picker.Update(tea.WindowSizeMsg{Width: m.Width, Height: m.Height})
		}
		return m, m.Picker.Init()
	case keymap.ActionResetSource:
		// Failures are reported by the controller and shown via LastError
		_ = m.Controller.ResetToDefault()
	case keymap.ActionEmitProcessing:
		m.Controller.Handle(fade.ProcessingStarted)
	case keymap.ActionEmitDone:
		m.Controller.Handle(fade.Done)
	case keymap.ActionEmitCancelled:
		m.Controller.Handle(fade.Cancelled)
	case keymap.ActionEmitError:
		m.Controller.Handle(fade.Error)
	}
	return m, nil
}

func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.PickerKeys.Resolve(msg.String()) {
	case keymap.ActionCancel:
		m.Picking = false
		m.Notice = ""
		return m, nil
	case keymap.ActionQuit:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.Picker, cmd = m.Picker.Update(msg)

	if ok, path := m.Picker.DidSelectFile(msg); ok {
		m.Picking = false
		m.Notice = ""
		m.log.Debug("picked file", zap.String("path", path))
		_ = m.Controller.SelectSource(path)
		return m, nil
	}
	if ok, path := m.Picker.DidSelectDisabledFile(msg); ok {
		m.Notice = "Only .mp3 files can be selected: " + path
	}
	return m, cmd
}

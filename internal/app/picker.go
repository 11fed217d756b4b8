package app

import (
	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/beatsnslices/internal/fade"
	"github.com/llehouerou/beatsnslices/internal/keymap"
)

// PickerModel is a standalone "Select MP3" program. After it exits,
// Selected holds the chosen path, or "" when the user cancelled.
type PickerModel struct {
	Picker   filepicker.Model
	Keys     *keymap.Resolver
	Selected string
	Notice   string
}

// NewPickerModel opens the picker in dir.
func NewPickerModel(dir string) PickerModel {
	return PickerModel{
		Picker: newPicker(dir),
		Keys:   keymap.ForContexts("picker"),
	}
}

// Init implements tea.Model.
func (m PickerModel) Init() tea.Cmd {
	return m.Picker.Init()
}

// Update implements tea.Model.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch m.Keys.Resolve(msg.String()) {
		case keymap.ActionCancel, keymap.ActionQuit:
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.Picker, cmd = m.Picker.Update(msg)

	if ok, path := m.Picker.DidSelectFile(msg); ok {
		m.Selected = path
		return m, tea.Quit
	}
	if ok, path := m.Picker.DidSelectDisabledFile(msg); ok {
		m.Notice = "Only .mp3 files can be selected: " + path
	}
	return m, cmd
}

// View implements tea.Model.
func (m PickerModel) View() string {
	return pickerView(m.Picker, m.Keys, m.Notice, defaultWidth)
}

// PickerStartDir is the directory the picker opens in: the folder of the
// current source, else the home directory.
func PickerStartDir(prefs fade.Preferences) string {
	return startDir(prefs)
}

// Package app is the bubbletea front-end: a status panel for the fade
// controller, the "Select MP3" / "Default" menu actions and a file picker.
package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/beatsnslices/internal/fade"
	"github.com/llehouerou/beatsnslices/internal/keymap"
)

const refreshInterval = time.Second

// Model is the root application model.
//
// The controller is only touched from Update and View, which bubbletea runs
// on its event loop; other goroutines reach it through Post.
type Model struct {
	Controller *fade.Controller
	Prefs      fade.Preferences
	Keys       *keymap.Resolver
	PickerKeys *keymap.Resolver
	Picker     filepicker.Model
	Picking    bool
	ShowHelp   bool
	Notice     string
	Width      int
	Height     int
	Now        func() time.Time

	log *zap.Logger
}

// New creates the model.
func New(ctrl *fade.Controller, prefs fade.Preferences, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	return Model{
		Controller: ctrl,
		Prefs:      prefs,
		Keys:       keymap.ForContexts("global", "simulate"),
		PickerKeys: keymap.ForContexts("picker"),
		Picker:     newPicker(startDir(prefs)),
		Now:        time.Now,
		log:        log.Named("tui"),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return refreshCmd()
}

func newPicker(dir string) filepicker.Model {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".mp3"}
	fp.CurrentDirectory = dir
	fp.AutoHeight = true
	fp.ShowPermissions = false
	return fp
}

// startDir is the directory of the current source, falling back to the
// home directory.
func startDir(prefs fade.Preferences) string {
	if prefs != nil {
		if src, err := prefs.Source(); err == nil && src != "" {
			dir := filepath.Dir(src)
			if info, err := os.Stat(dir); err == nil && info.IsDir() {
				return dir
			}
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

func refreshCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return RefreshMsg(t)
	})
}

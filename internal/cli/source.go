package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/llehouerou/beatsnslices/internal/app"
	"github.com/llehouerou/beatsnslices/internal/errmsg"
)

// ErrNotMP3 is returned when a selected file is not an .mp3.
var ErrNotMP3 = errors.New("only .mp3 files can be selected")

var selectCmd = &cobra.Command{
	Use:   "select [path]",
	Short: "Select MP3: choose the background music",
	Long: `Stores path as the background music for future sessions. Without a
path a file picker is opened.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(nil)
		if err != nil {
			return err
		}
		defer e.Close()

		var path string
		if len(args) == 1 {
			path = args[0]
		} else {
			path, err = pickFile(e)
			if err != nil {
				return err
			}
			if path == "" {
				printf(cmd.OutOrStdout(), "No file selected\n")
				return nil
			}
		}

		path, err = validateSource(path)
		if err != nil {
			return errors.New(errmsg.FormatWith(errmsg.OpSourceSelect, path, err))
		}
		if err := e.prefs.SetSource(path); err != nil {
			return errors.New(errmsg.Format(errmsg.OpSourceSelect, err))
		}
		e.log.Info("source selected", zap.String("path", path))
		printf(cmd.OutOrStdout(), "Background music set to %s\n", path)
		return nil
	},
}

var defaultCmd = &cobra.Command{
	Use:   "default",
	Short: "Default: go back to the bundled background music",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := openEnv(nil)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.prefs.ResetSource(); err != nil {
			return errors.New(errmsg.Format(errmsg.OpSourceReset, err))
		}
		e.log.Info("source reset to default")
		printf(cmd.OutOrStdout(), "Background music reset to %s\n", e.prefs.DefaultSource())
		return nil
	},
}

var sourceCmd = &cobra.Command{
	Use:   "source",
	Short: "Print the background music used for new sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := openEnv(nil)
		if err != nil {
			return err
		}
		defer e.Close()

		src, err := e.prefs.Source()
		if err != nil {
			return errors.New(errmsg.Format(errmsg.OpSourceLoad, err))
		}
		if e.prefs.IsDefault() {
			printf(cmd.OutOrStdout(), "%s (default)\n", src)
		} else {
			printf(cmd.OutOrStdout(), "%s\n", src)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(selectCmd, defaultCmd, sourceCmd)
}

// validateSource returns the absolute path of an existing .mp3 file.
func validateSource(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path, err
	}
	if !strings.EqualFold(filepath.Ext(abs), ".mp3") {
		return abs, ErrNotMP3
	}
	info, err := os.Stat(abs)
	if err != nil {
		return abs, err
	}
	if info.IsDir() {
		return abs, fmt.Errorf("%s is a directory", abs)
	}
	return abs, nil
}

func pickFile(e *env) (string, error) {
	p := tea.NewProgram(app.NewPickerModel(app.PickerStartDir(e.prefs)), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return "", err
	}
	m, ok := final.(app.PickerModel)
	if !ok {
		return "", nil
	}
	return m.Selected, nil
}

package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/llehouerou/beatsnslices/internal/app"
	"github.com/llehouerou/beatsnslices/internal/eventloop"
	"github.com/llehouerou/beatsnslices/internal/logger"
	"github.com/llehouerou/beatsnslices/internal/stderr"
)

// loopBuffer is the headless loop's queue depth.
const loopBuffer = 64

var headless bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Listen for slicer events and play background music",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if headless {
			return runHeadless(cmd.Context())
		}
		return runTUI(cmd)
	},
}

func init() {
	runCmd.Flags().BoolVar(&headless, "headless", false, "run without the terminal UI, logging to stderr")
	rootCmd.AddCommand(runCmd)
}

func runTUI(cmd *cobra.Command) error {
	e, err := openEnv(nil)
	if err != nil {
		return err
	}
	defer e.Close()

	// Audio libraries may write to stderr, which would corrupt the TUI
	if err := stderr.Start(func(line string) {
		e.log.Warn("stderr output", zap.String("line", line))
	}); err != nil {
		e.log.Debug("stderr capture unavailable", zap.Error(err))
	}
	defer stderr.Stop()

	var p *tea.Program
	post := app.Post(func(msg tea.Msg) { p.Send(msg) })

	ctrl := e.newController(post)
	p = tea.NewProgram(app.New(ctrl, e.prefs, e.log), tea.WithAltScreen())

	ctx, cancel := context.WithCancel(cmd.Context())
	done := e.startSource(ctx, post, ctrl)

	_, err = p.Run()

	cancel()
	<-done
	ctrl.Close()
	return err
}

func runHeadless(parent context.Context) error {
	e, err := openEnv(logger.Stderr())
	if err != nil {
		return err
	}
	defer e.Close()

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	loop := eventloop.New(loopBuffer)
	ctrl := e.newController(loop.Post)
	done := e.startSource(ctx, loop.Post, ctrl)

	e.log.Info("waiting for slicer events")
	err = loop.Run(ctx)

	<-done
	ctrl.Close()
	e.log.Info("stopped")

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

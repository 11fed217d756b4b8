package cli

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/llehouerou/beatsnslices/internal/backend"
	"github.com/llehouerou/beatsnslices/internal/config"
	"github.com/llehouerou/beatsnslices/internal/errmsg"
	"github.com/llehouerou/beatsnslices/internal/fade"
)

const emitTimeout = 5 * time.Second

var emitCmd = &cobra.Command{
	Use:   "emit <event>",
	Short: "Send a slicer backend event to the running player",
	Long: `Delivers one backend event to a running instance over the configured
transport. Events: ` + eventList(),
	Args:      cobra.ExactArgs(1),
	ValidArgs: eventTokens(),
	RunE: func(cmd *cobra.Command, args []string) error {
		ev, err := fade.ParseEvent(args[0])
		if err != nil {
			return err
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		events := cfg.GetEventsConfig()
		if events.Transport == config.TransportFile {
			err = backend.WriteStatus(events.Path, ev)
		} else {
			ctx, cancel := context.WithTimeout(cmd.Context(), emitTimeout)
			defer cancel()
			err = backend.Send(ctx, events.Path, ev.String())
		}
		if err != nil {
			return errors.New(errmsg.FormatWith(errmsg.OpEventSend, ev.String(), err))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(emitCmd)
}

func eventTokens() []string {
	return []string{
		fade.ProcessingStarted.String(),
		fade.Done.String(),
		fade.Cancelled.String(),
		fade.Error.String(),
	}
}

func eventList() string {
	return strings.Join(eventTokens(), ", ")
}

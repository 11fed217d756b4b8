// Package cli defines the beatsnslices command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "beatsnslices",
	Short: "Elevated Beats n' Slices plays waiting music while the slicer works.",
	Long: `Elevated Beats n' Slices fades looping background music in when the
slicer backend starts processing and fades it out when slicing finishes,
is cancelled or fails.

Without a subcommand the terminal UI is started.`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runTUI(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file loaded on top of the default locations")
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Package cli implements the huddle command line client.
package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/BioHazard786/huddle/internal/ui"
	"github.com/BioHazard786/huddle/internal/version"
)

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	var opts Options

	rootCmd := &cobra.Command{
		Use:     "huddle",
		Short:   "Command line peer for the huddle signaling server",
		Long:    `huddle talks to a huddle signaling server. It checks server health, inspects rooms and joins a room as a chat peer that can exercise every room action.`,
		Version: version.Version,
	}
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.PersistentFlags().StringVarP(&opts.Server, "server", "s", "", "server base URL (env HUDDLE_SERVER, default "+DefaultServer+")")
	rootCmd.PersistentFlags().StringVar(&opts.Codec, "codec", "", "wire codec: json or msgpack (env HUDDLE_CODEC)")

	rootCmd.AddCommand(
		newHealthCmd(&opts),
		newStatsCmd(&opts),
		newRoomCmd(&opts),
		newJoinCmd(&opts),
	)
	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		var cmdErr *CommandError
		if errors.As(err, &cmdErr) {
			cmdErr.Print()
		} else {
			ui.PrintError(err.Error())
		}
		os.Exit(1)
	}
}

// Shiftdeck is a terminal interface for timeshift snapshots.
//
// It lists the backup devices timeshift knows about, browses the snapshots
// on each, and creates or deletes snapshots without leaving the keyboard.
// Every action is carried out by the timeshift command itself, normally
// through sudo.
//
// Usage:
//
//	shiftdeck [command] [flags]
//
// Running without arguments launches the interactive interface.
// See 'shiftdeck --help' for available commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/shiftdeck/internal/logging"
	"github.com/muurk/shiftdeck/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		logging.Error("command failed", zap.Error(err))
		logging.Sync()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logging.Sync()
}

var rootCmd = &cobra.Command{
	Use:   "shiftdeck",
	Short: "Browse, create and delete timeshift snapshots",
	Long: `A terminal interface for timeshift.

Lists backup devices and their snapshots, and creates or deletes snapshots
by running timeshift (through sudo unless --no-sudo is given).

If no command is specified, the interactive interface launches.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runInteractive,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "shiftdeck %s (commit: %s)\n", version.Version, version.Commit)
	},
}

// Package cli implements the Cobra command hierarchy for the dupefinder CLI
// tool. The root command defined here is the entry point for all
// subcommands and handles cross-cutting concerns like logging
// initialization and error handling, mirroring the teacher's internal/cli
// package for the harvx tool.
package cli

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/morroware/DupeFInder/internal/runconfig"
	"github.com/morroware/DupeFInder/internal/runerr"
)

// flagValues holds the parsed global flag values, populated by
// runconfig.BindFlags during command initialization and validated in
// PersistentPreRunE.
var flagValues *runconfig.FlagValues

var rootCmd = &cobra.Command{
	Use:   "dupefinder",
	Short: "Find and resolve duplicate files.",
	Long: `DupeFinder walks one or more root directories, fingerprints candidate
files concurrently with a persistent cache, groups byte-identical (or,
with --fuzzy, near-identical) files, and applies one user-selected
resolution action per group while always keeping exactly one survivor.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := flagValues.Validate(); err != nil {
			return runerr.Wrap(runerr.CodeConfigInvalid, "validate flags", err)
		}

		level := runconfig.ResolveLogLevel(flagValues.Verbose, flagValues.Quiet)
		format := runconfig.ResolveLogFormat()
		runconfig.SetupLogging(level, format)

		slog.Debug("logging initialized", "level", level, "format", format)
		return nil
	},
	// When no subcommand is given, delegate to the scan command.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScan(cmd, args)
	},
}

func init() {
	flagValues = runconfig.BindFlags(rootCmd)
}

// Execute runs the root command and returns an appropriate process exit
// code. If the error is a *runerr.Error, its ExitCode is used.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error(err.Error())
		return extractExitCode(err)
	}
	return runerr.ExitSuccess
}

// extractExitCode determines the process exit code from an error. If the
// error is a *runerr.Error, its ExitCode method is used; otherwise any
// non-nil error returns runerr.ExitUnexpected.
func extractExitCode(err error) int {
	if err == nil {
		return runerr.ExitSuccess
	}
	var re *runerr.Error
	if errors.As(err, &re) {
		return re.ExitCode()
	}
	return runerr.ExitUnexpected
}

// RootCmd returns the root cobra.Command for use in testing and subcommand
// registration.
func RootCmd() *cobra.Command {
	return rootCmd
}

// GlobalFlags returns the parsed global flag values. Available after
// PersistentPreRunE has run.
func GlobalFlags() *runconfig.FlagValues {
	return flagValues
}

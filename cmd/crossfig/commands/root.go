// Package commands implements the crossfig CLI.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bushrat011899/crossfig/pkg/crossfig/diag"
)

var (
	// Global flags
	manifestPath string
	logLevel     string
)

// Execute runs the root command.
func Execute(ctx context.Context, version, commit, buildDate string) error {
	rootCmd := newRootCommand(version, commit, buildDate)
	return rootCmd.ExecuteContext(ctx)
}

// ExitCode maps a command error to the process exit code via the
// diagnostic taxonomy, so scripts can tell declaration mistakes apart
// from tool failures.
func ExitCode(err error) int {
	return diag.Classify(err).ExitCode()
}

func newRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "crossfig",
		Short: "crossfig - build-time conditional configuration",
		Long: `crossfig resolves a component's conditional configuration before the
compiler runs: named build conditions (aliases) are declared once,
combined with not/any/all, and ordered switches select exactly one
source block per build.

Everything is resolved from the manifest; consumers of the generated
code see plain constants and a single compiled variant.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&manifestPath, "manifest", "m", "crossfig.yaml", "manifest file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newGenerateCommand())
	rootCmd.AddCommand(newResolveCommand())
	rootCmd.AddCommand(newEvalCommand())
	rootCmd.AddCommand(newHistoryCommand())

	return rootCmd
}

// setupLogging configures the process-wide slog default.
func setupLogging() {
	var level slog.Level
	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

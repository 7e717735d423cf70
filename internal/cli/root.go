// Package cli implements the countfit command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arloliu/countfit/internal/logger"
)

// app carries state shared by the subcommands.
type app struct {
	logger *zap.Logger
	// owned is set when the logger was built by the root command and must be
	// synced on exit.
	owned bool
}

func (a *app) log() *zap.Logger {
	if a.logger == nil {
		return zap.NewNop()
	}

	return a.logger
}

// Execute runs the countfit command and returns the process exit code.
func Execute() int {
	if err := newRootCmd(&app{}).Execute(); err != nil {
		return 1
	}

	return 0
}

func newRootCmd(a *app) *cobra.Command {
	var verbose, jsonLogs bool

	cmd := &cobra.Command{
		Use:   "countfit",
		Short: "Poisson regression for count data",
		Long: `countfit fits Poisson regression models with a log link by maximum likelihood.

It reads CSV files or compressed dataset snapshots, builds a design matrix from
numeric and categorical columns, and reports coefficients with standard errors
from the observed information matrix.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if a.logger != nil {
				return nil
			}

			l, err := logger.New(logger.Config{Verbose: verbose, JSON: jsonLogs})
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = l
			a.owned = true

			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.owned && a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr, including optimizer iterations")
	cmd.PersistentFlags().BoolVar(&jsonLogs, "log-json", false, "Write logs as JSON lines")

	cmd.AddCommand(
		fitCmd(a),
		describeCmd(a),
		snapshotCmd(a),
		versionCmd(),
	)
	cmd.SetErr(os.Stderr)

	return cmd
}

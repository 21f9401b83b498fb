// Package main implements ccsmt, a small ground-EUF SMT driver: it reads
// assert/check-sat/exit statements from stdin or a file, clausifies each
// assertion through pkg/tseitin, and answers check-sat by driving
// pkg/cc's congruence-closure engine with a minimal chronological-
// backtracking search (solve.go) standing in for a real external CDCL
// solver.
package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gitrdm/ccsmt/internal/config"
	"github.com/gitrdm/ccsmt/internal/logging"
)

var (
	verbose bool

	logger *zap.Logger
)

// rootCmd is the base command; ccsmt has no useful behavior of its own
// without a run subcommand, so it just prints help.
var rootCmd = &cobra.Command{
	Use:   "ccsmt",
	Short: "ccsmt - a ground EUF congruence-closure SMT driver",
	Long: `ccsmt reads assert/check-sat/exit statements and answers each
check-sat using congruence closure over uninterpreted functions (EUF),
driven by a minimal built-in search loop rather than a real CDCL solver.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return errors.Wrap(err, "load config")
		}
		if verbose {
			cfg.LogLevel = "debug"
		}
		logger, err = logging.New(cfg.LogLevel, cfg.LogJSON)
		if err != nil {
			return errors.Wrap(err, "build logger")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// runCmd runs a statement script from a file, or from stdin if no file
// is given.
var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run an assert/check-sat/exit script",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := os.Stdin
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return errors.Wrapf(err, "open %s", args[0])
			}
			defer f.Close()
			in = f
		}
		return Run(in, os.Stdout, logger)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

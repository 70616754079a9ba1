package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type cliOptions struct {
	scenario string
	me       string
	verbose  bool
	watch    bool
	logger   *zap.Logger
}

func main() {
	if err := runCLI(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	root := newRootCmd()
	root.SetArgs(args)
	return root.Execute()
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "wfl",
		Short: "Inspect game state through formula callables",
		Long: `wfl loads a scenario file and exposes its map, units, teams, unit types
and configs as the callables a formula sees.

Paths are dotted attribute lookups rooted at the bindings: map, teams,
units, unit_types, config and, with --me, the acting unit.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.scenario == "" {
				return errors.New("--scenario is required")
			}
			// the REPL owns the terminal
			if cmd.Name() == "repl" && !opts.verbose {
				return nil
			}
			config := zap.NewProductionConfig()
			if opts.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = opts.logger.Sync()
		},
	}

	root.PersistentFlags().StringVarP(&opts.scenario, "scenario", "s", "", "Scenario file (YAML)")
	root.PersistentFlags().StringVar(&opts.me, "me", "", "Bind the unit with this id as me")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(newInspectCmd(opts))
	root.AddCommand(newCheckCmd(opts))
	root.AddCommand(newREPLCmd(opts))
	return root
}

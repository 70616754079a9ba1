package main

import (
	"fmt"
	"io"

	"github.com/mgomes/wfl/wfl"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newInspectCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [path]",
		Short: "Print the attributes a callable exposes",
		Long: `Evaluate a path and print the result. Callables are expanded into their
attribute list. Without a path the root bindings are listed.

  wfl inspect -s skirmish.yaml --me konrad me.loc
  wfl inspect -s skirmish.yaml "me.wings ?? status"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(opts.scenario, opts.me, opts.logger)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				describe(cmd.OutOrStdout(), wfl.NewCallable(s.scope))
				return nil
			}
			val, err := s.run(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", wfl.StatusOf(err), err)
			}
			describe(cmd.OutOrStdout(), val)
			return nil
		},
	}
}

// describe prints a value; callables are expanded one level.
func describe(w io.Writer, v wfl.Value) {
	c := v.Callable()
	if c == nil {
		fmt.Fprintln(w, v.String())
		return
	}
	if text, err := wfl.Serialize(c); err == nil {
		fmt.Fprintf(w, "%s %s\n", c.Type(), text)
	} else {
		fmt.Fprintln(w, c.Type())
	}
	for _, in := range c.Inputs() {
		name := in.Name
		if in.Writable {
			name += "*"
		}
		val, err := c.Get(in.Name)
		if err != nil {
			fmt.Fprintf(w, "  %-16s ! %s\n", name, wfl.StatusOf(err))
			continue
		}
		fmt.Fprintf(w, "  %-16s = %s\n", name, val.String())
	}
}

func newCheckCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load a scenario and read every attribute of every bound callable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(opts.scenario, opts.me, opts.logger)
			if err != nil {
				return err
			}
			report := checkScope(s.scope)
			for _, p := range report.problems {
				fmt.Fprintln(cmd.ErrOrStderr(), p)
			}
			opts.logger.Info("scenario checked",
				zap.String("path", opts.scenario),
				zap.Int("callables", report.callables),
				zap.Int("attributes", report.attributes),
				zap.Int("problems", len(report.problems)),
			)
			if len(report.problems) > 0 {
				return fmt.Errorf("%s: %d problems", opts.scenario, len(report.problems))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d callables, %d attributes)\n",
				s.world.Name, report.callables, report.attributes)
			return nil
		},
	}
}

type checkReport struct {
	callables  int
	attributes int
	problems   []string
}

// checkScope reads every input of every callable reachable from the root
// bindings, descending through arrays and hashes but not into attribute
// values.
func checkScope(scope wfl.Callable) checkReport {
	var r checkReport
	for _, in := range scope.Inputs() {
		val, err := scope.Get(in.Name)
		if err != nil {
			r.problems = append(r.problems, fmt.Sprintf("%s: %v", in.Name, err))
			continue
		}
		r.walk(in.Name, val)
	}
	return r
}

func (r *checkReport) walk(path string, v wfl.Value) {
	switch v.Kind() {
	case wfl.KindArray:
		for i, item := range v.Array() {
			r.walk(fmt.Sprintf("%s.%d", path, i), item)
		}
	case wfl.KindHash:
		for key, item := range v.Hash() {
			r.walk(path+"."+key, item)
		}
	case wfl.KindCallable:
		c := v.Callable()
		r.callables++
		for _, in := range c.Inputs() {
			if _, err := c.Get(in.Name); err != nil {
				r.problems = append(r.problems, fmt.Sprintf("%s.%s: %v", path, in.Name, err))
				continue
			}
			r.attributes++
		}
	}
}

// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/katalvlaran/rootbox/interval"
	"github.com/katalvlaran/rootbox/problems"
	"github.com/katalvlaran/rootbox/solver"
)

func newSolveCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve PROBLEM",
		Short: "Find all roots of a registered problem",
		Long: `Run the all-solutions search on a problem from the registry
(see "rootbox problems").

Settings come from flags, ROOTBOX_* environment variables or the config file:
  solve.workers    worker goroutines (0 = one per CPU)
  solve.giveup     give-up width (defaults to the problem's own)
  solve.rest       report abandoned boxes
  solve.verbosity  1 = announce roots, 2 = live counters
  solve.format     text, json or yaml
  solve.metrics    dump Prometheus metrics after the run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd, v, args[0])
		},
	}

	f := cmd.Flags()
	f.Int("workers", 0, "number of workers (0 = GOMAXPROCS)")
	f.Float64("giveup", 0, "give-up width (0 = split until exhaustion)")
	f.Bool("rest", false, "collect and print abandoned boxes")
	f.IntP("verbosity", "v", 0, "console verbosity (0-2)")
	f.StringP("format", "o", defaultFormat, "output format (text, json, yaml)")
	f.Bool("metrics", false, "print Prometheus metrics after the run")
	f.String("box", "", `override the search box, e.g. "-1:1,-2:2"`)

	_ = v.BindPFlag(keyWorkers, f.Lookup("workers"))
	_ = v.BindPFlag(keyGiveUp, f.Lookup("giveup"))
	_ = v.BindPFlag(keyRest, f.Lookup("rest"))
	_ = v.BindPFlag(keyVerbosity, f.Lookup("verbosity"))
	_ = v.BindPFlag(keyFormat, f.Lookup("format"))
	_ = v.BindPFlag(keyMetrics, f.Lookup("metrics"))

	return cmd
}

func runSolve(cmd *cobra.Command, v *viper.Viper, name string) error {
	p, err := problems.Lookup(name)
	if err != nil {
		return err
	}

	box := p.Box()
	if raw, _ := cmd.Flags().GetString("box"); raw != "" {
		if box, err = parseBox(raw); err != nil {
			return err
		}
	}

	verbosity := v.GetInt(keyVerbosity)
	level := v.GetString(keyLogLevel)
	if verbosity > 0 && parseLevel(level) > slog.LevelInfo {
		level = LevelInfo
	}
	logger := newLogger(cmd.ErrOrStderr(), level, v.GetString(keyLogFormat))

	giveUp := p.GiveUpWidth
	if v.IsSet(keyGiveUp) {
		giveUp = v.GetFloat64(keyGiveUp)
	}

	reg := prometheus.NewRegistry()
	opts := []solver.Option{
		solver.WithContext(cmd.Context()),
		solver.WithGiveUpWidth(giveUp),
		solver.WithVerbosity(verbosity),
		solver.WithLogger(logger),
		solver.WithMetrics(solver.NewMetrics(reg)),
	}
	if w := v.GetInt(keyWorkers); w > 0 {
		opts = append(opts, solver.WithWorkers(w))
	}
	if v.GetBool(keyRest) {
		opts = append(opts, solver.WithRest())
	}
	if verbosity >= 2 {
		opts = append(opts, solver.WithProgress(cmd.ErrOrStderr()))
	}

	logger.Debug("solving", slog.String("problem", p.Name), slog.String("box", box.String()))
	res, err := solver.FindAll(p.System, box, opts...)
	if err != nil {
		return fmt.Errorf("failed to solve %s: %w", p.Name, err)
	}

	out := cmd.OutOrStdout()
	if err = writeReport(out, v.GetString(keyFormat), newReport(p.Name, res)); err != nil {
		return err
	}
	if !v.GetBool(keyMetrics) {
		return nil
	}

	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err = expfmt.MetricFamilyToText(out, mf); err != nil {
			return err
		}
	}

	return nil
}

// parseBox reads "lo:hi,lo:hi,...". Bounds accept anything strconv does,
// including "inf" and "-inf".
func parseBox(s string) (interval.Box, error) {
	parts := strings.Split(s, ",")
	box := make(interval.Box, len(parts))
	for i, part := range parts {
		lo, hi, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok {
			return nil, fmt.Errorf("invalid box component %q: want lo:hi", part)
		}
		l, err := strconv.ParseFloat(lo, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid lower bound %q: %w", lo, err)
		}
		h, err := strconv.ParseFloat(hi, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid upper bound %q: %w", hi, err)
		}
		if l > h {
			return nil, fmt.Errorf("invalid box component %q: lo > hi", part)
		}
		box[i] = interval.New(l, h)
	}

	return box, nil
}

// SPDX-License-Identifier: MIT

// Package cli wires the rootbox command tree: configuration (flags, env,
// config file), logging and output formatting around the solver.
package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g. ROOTBOX_SOLVE_WORKERS
// for solve.workers.
const EnvPrefix = "ROOTBOX"

// Configuration keys.
const (
	keyConfig    = "config"
	keyLogLevel  = "log.level"
	keyLogFormat = "log.format"
	keyWorkers   = "solve.workers"
	keyGiveUp    = "solve.giveup"
	keyRest      = "solve.rest"
	keyVerbosity = "solve.verbosity"
	keyFormat    = "solve.format"
	keyMetrics   = "solve.metrics"
)

const (
	defaultFormat   = "text"
	defaultLogLevel = "warn"
)

// NewRootCmd builds the command tree with its own viper instance.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	root := &cobra.Command{
		Use:   "rootbox",
		Short: "Rigorous all-solutions finder for nonlinear systems",
		Long: `rootbox searches a box for every root of a square nonlinear system.
Each reported root is proven unique in its enclosure by interval arithmetic;
regions that could not be decided are reported as rest boxes.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(v)
		},
	}

	root.PersistentFlags().StringP("config", "c", "", "config file (default is ./rootbox.yaml or $HOME/.config/rootbox/config.yaml)")
	root.PersistentFlags().String("log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "text", "log format (text, json)")
	_ = v.BindPFlag(keyConfig, root.PersistentFlags().Lookup("config"))
	_ = v.BindPFlag(keyLogLevel, root.PersistentFlags().Lookup("log-level"))
	_ = v.BindPFlag(keyLogFormat, root.PersistentFlags().Lookup("log-format"))

	root.AddCommand(newSolveCmd(v), newProblemsCmd())

	return root
}

// Execute runs the command tree with ctx (cancelled on interrupt by main).
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func initConfig(v *viper.Viper) error {
	v.SetDefault(keyFormat, defaultFormat)
	v.SetDefault(keyLogLevel, defaultLogLevel)
	v.SetDefault(keyLogFormat, "text")

	if cfgFile := v.GetString(keyConfig); cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("rootbox")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/rootbox")
	}

	v.SetEnvPrefix(EnvPrefix)
	// solve.workers → ROOTBOX_SOLVE_WORKERS
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// A missing default config file is fine; an unreadable one is not.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || v.GetString(keyConfig) != "" {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	return nil
}

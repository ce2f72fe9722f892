package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gitrdm/gofdsolver/internal/config"
	"github.com/gitrdm/gofdsolver/pkg/solver"
)

var (
	flagLogLevel string
	flagConfig   string
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "gofd",
		Short:         "Finite-domain constraint solver",
		Long:          "gofd solves built-in finite-domain models with a tree-search driver.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(flagLogLevel)
			if err != nil {
				return err
			}
			logrus.SetLevel(level)
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "logrus level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "yaml search configuration file")
	cmd.AddCommand(newNQueensCmd())
	cmd.AddCommand(newOptimizeCmd())
	return cmd
}

// loadConfig returns the configured search harness, or defaults when no
// --config file was given.
func loadConfig() (*config.SearchConfig, error) {
	if flagConfig == "" {
		return config.Default(), nil
	}
	return config.Load(flagConfig)
}

// applyConfig plugs the configured monitors into the solver.
func applyConfig(s *solver.Solver) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return cfg.Apply(s)
}

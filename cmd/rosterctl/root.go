package main

import (
	"github.com/spf13/cobra"

	"github.com/hostelhub/roster-import/internal/config"
	"github.com/hostelhub/roster-import/internal/pkg/logger"
)

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:           "rosterctl",
		Short:         "Operate the hostel roster import",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "config.yaml", "Path to the YAML config file")

	cmd.AddCommand(newIngestCmd(&opts))
	cmd.AddCommand(newMigrateCmd(&opts))
	return cmd
}

func loadConfig(opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	logger.Configure(logger.Config{Level: cfg.Logging.Level, Pretty: cfg.Logging.Pretty})
	return cfg, nil
}

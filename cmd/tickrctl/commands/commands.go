package commands

import (
	"tickr/internal/config"
	"tickr/internal/logger"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCommand creates the tickrctl command tree.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tickrctl",
		Short:         "Tickr administration tool",
		SilenceUsage: true,
	}

	cmd.AddCommand(
		NewMigrateCommand(),
		NewTokenCommand(),
	)

	return cmd
}

func load() (*config.Config, *logrus.Logger) {
	cfg := config.Load()
	return cfg, logger.New(cfg.LogLevel, cfg.LogFormat)
}

package commands

import (
	"fmt"

	"tickr/internal/database"

	"github.com/spf13/cobra"
)

// NewMigrateCommand creates the migrate command
func NewMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database schema migrations",
	}

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log := load()
			db, err := database.Open(cfg, log)
			if err != nil {
				return fmt.Errorf("failed to connect to DB: %w", err)
			}
			return database.Migrate(db, log)
		},
	}
}

func newDownCommand() *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "down",
		Short: "Revert applied migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log := load()
			db, err := database.Open(cfg, log)
			if err != nil {
				return fmt.Errorf("failed to connect to DB: %w", err)
			}
			return database.Rollback(db, steps, log)
		},
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "number of migrations to revert")
	return cmd
}

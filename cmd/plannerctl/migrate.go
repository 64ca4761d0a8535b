package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tourday/planner/internal/app"
	"github.com/tourday/planner/internal/config"
	"github.com/tourday/planner/internal/repo"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending migrations for the configured SQL driver",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadFrom(opts.envFile)
			if err != nil {
				return err
			}
			store, err := repo.OpenStore(cmd.Context(), repo.StoreOptions{
				Driver:      cfg.StoreDriver,
				SQLitePath:  cfg.SQLitePath,
				DatabaseURL: cfg.DatabaseURL,
			})
			if err != nil {
				return err
			}
			defer store.Close()

			if cfg.StoreDriver == config.DriverMemory {
				fmt.Fprintln(cmd.OutOrStdout(), "memory driver: nothing to migrate")
				return nil
			}
			if err := app.Migrate(cmd.Context(), store, app.NewLogger(cfg.LogLevel, cmd.ErrOrStderr())); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s store is up to date\n", cfg.StoreDriver)
			return nil
		},
	}
}

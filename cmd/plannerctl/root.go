package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tourday/planner/internal/app"
	"github.com/tourday/planner/internal/config"
)

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	envFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "plannerctl",
		Short:         "Tourday planner admin CLI",
		Long:          "Inspect plans and checklists and maintain the planner store.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before the environment")

	root.AddCommand(
		newMigrateCmd(opts),
		newPlansCmd(opts),
		newShowCmd(opts),
		newChecklistCmd(opts),
		newPruneCmd(opts),
		newRepairCmd(opts),
	)
	return root
}

// openServices loads configuration and opens the store. Migrations are not
// applied; use the migrate command for that.
func openServices(ctx context.Context, cmd *cobra.Command, opts *rootOptions) (*app.Services, config.Config, error) {
	cfg, err := config.LoadFrom(opts.envFile)
	if err != nil {
		return nil, config.Config{}, err
	}
	log := app.NewLogger(cfg.LogLevel, cmd.ErrOrStderr())
	svc, err := app.Open(ctx, cfg, log, nil, false)
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("open store: %w", err)
	}
	return svc, cfg, nil
}

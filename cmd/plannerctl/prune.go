package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPruneCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "prune-checklists",
		Short: "Delete checklists whose plan no longer exists",
		Long: "Delete checklists whose plan no longer exists. Checklists still edited under a " +
			"draft id are removed too, so run this when no plan is being created. Nothing is " +
			"deleted when the plan collection cannot be read.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, _, err := openServices(cmd.Context(), cmd, opts)
			if err != nil {
				return err
			}
			defer svc.Close()

			removed, err := svc.Checklists.PruneOrphans(cmd.Context(), svc.Plans)
			out := cmd.OutOrStdout()
			for _, id := range removed {
				fmt.Fprintf(out, "removed %s\n", id)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%d orphaned checklist(s) removed\n", len(removed))
			return nil
		},
	}
}

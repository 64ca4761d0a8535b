package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tourday/planner/internal/domain"
)

func newChecklistCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "checklist <planId>",
		Short: "Print a plan's checklist grouped by category",
		Long:  "Print a plan's checklist grouped by category. A plan without a stored checklist gets the default template.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := openServices(cmd.Context(), cmd, opts)
			if err != nil {
				return err
			}
			defer svc.Close()

			items, err := svc.Checklists.MaterializeOrLoad(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			sum := domain.SummarizeChecklist(items)
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "%s %d/%d %s\n",
				titleStyle.Render("checklist"), sum.Checked, sum.Total, progressBar(sum.Progress, 20))
			for _, g := range sum.Groups {
				fmt.Fprintln(out)
				fmt.Fprintln(out, titleStyle.Render(g.Category)+" "+mutedStyle.Render(g.Subtotal()))
				for _, it := range g.Items {
					box := "[ ]"
					if it.Checked {
						box = "[x]"
					}
					fmt.Fprintf(out, "  %s %s %s\n", box, it.Text, mutedStyle.Render(it.ID))
				}
			}
			return nil
		},
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tourday/planner/internal/domain"
	"github.com/tourday/planner/internal/service"
)

func newPlansCmd(opts *rootOptions) *cobra.Command {
	var (
		query, filter string
		page, limit   int
	)
	cmd := &cobra.Command{
		Use:   "plans",
		Short: "List plans with their budget status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := domain.ParsePlanFilter(filter)
			if err != nil {
				return err
			}
			svc, cfg, err := openServices(cmd.Context(), cmd, opts)
			if err != nil {
				return err
			}
			defer svc.Close()

			plans, meta, err := svc.Plans.Search(cmd.Context(), service.SearchParams{
				Query:  query,
				Filter: f,
				Page:   domain.NewPaginationParams(&page, &limit),
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(plans) == 0 {
				fmt.Fprintln(out, "No plans found.")
				return nil
			}

			rows := make([][]string, 0, len(plans))
			for _, p := range plans {
				v := svc.Plans.View(p, cfg.DefaultCurrency)
				rows = append(rows, []string{
					p.ID,
					p.Title,
					p.Destination,
					domain.FormatDate(p.StartDate) + " ~ " + domain.FormatDate(p.EndDate),
					v.Stats.FormattedSpent + " / " + v.Stats.FormattedBudget,
					statusLabel(v.BudgetSummary.Status) + " " + percent(v.BudgetSummary.Percentage),
				})
			}
			fmt.Fprintln(out, renderTable([]string{"ID", "Title", "Destination", "Dates", "Spent / Budget", "Status"}, rows))
			fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("page %d · %d of %d plans", meta.Page, len(plans), meta.Total)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "match title or destination (case-insensitive)")
	cmd.Flags().StringVar(&filter, "filter", "all", "all, upcoming or past")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&limit, "limit", domain.DefaultPageLimit, "plans per page (max 100)")
	return cmd
}

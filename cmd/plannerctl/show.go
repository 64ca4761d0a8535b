package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tourday/planner/internal/domain"
	"github.com/tourday/planner/internal/wizard"
)

func newShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <planId>",
		Short: "Print a plan's day-by-day schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, err := openServices(cmd.Context(), cmd, opts)
			if err != nil {
				return err
			}
			defer svc.Close()

			p, err := svc.Plans.GetByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			v := svc.Plans.View(p, cfg.DefaultCurrency)
			currency := p.CurrencyOr(cfg.DefaultCurrency)
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("%s  (%s, %s)", p.Title, p.Destination, p.Country)))
			fmt.Fprintf(out, "%s ~ %s · %d days · %d activities\n",
				domain.FormatDate(p.StartDate), domain.FormatDate(p.EndDate), v.Stats.DayCount, v.Stats.ActivityCount)
			fmt.Fprintf(out, "budget %s · spent %s · %s %s\n",
				v.Stats.FormattedBudget, v.Stats.FormattedSpent,
				progressBar(v.BudgetSummary.BarPercent, 20), statusLabel(v.BudgetSummary.Status))
			if len(p.Members) > 0 {
				labels := make([]string, len(p.Members))
				for i, m := range p.Members {
					labels[i] = wizard.MemberLabel(m)
				}
				fmt.Fprintf(out, "members %v\n", labels)
			}

			for _, d := range p.Days {
				fmt.Fprintln(out)
				fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Day %d · %s", d.DayNumber, domain.FormatDate(d.Date)))+
					"  "+mutedStyle.Render(domain.FormatCurrency(d.Cost(), currency)))
				if len(d.Activities) == 0 {
					fmt.Fprintln(out, mutedStyle.Render("  no activities"))
					continue
				}
				rows := make([][]string, 0, len(d.Activities))
				for _, a := range d.Activities {
					info := a.Category.Info()
					var cost, duration string
					if a.Cost != nil {
						cost = domain.FormatCurrency(*a.Cost, currency)
					}
					if a.Duration != nil {
						duration = strconv.Itoa(*a.Duration) + "m"
					}
					rows = append(rows, []string{a.Time, info.Icon + " " + info.Label, a.Title, a.Location, duration, cost})
				}
				fmt.Fprintln(out, renderTable([]string{"Time", "Category", "Title", "Location", "Duration", "Cost"}, rows))
			}
			return nil
		},
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRepairCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repair-plans",
		Short: "Move an unreadable plan collection aside",
		Long: "Plans cannot be saved while the stored plan collection is corrupt. repair-plans " +
			"copies the corrupt value to a timestamped backup key and clears the collection. " +
			"A readable collection is left untouched.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, _, err := openServices(cmd.Context(), cmd, opts)
			if err != nil {
				return err
			}
			defer svc.Close()

			backup, moved, err := svc.Plans.QuarantineCorrupt(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !moved {
				fmt.Fprintln(out, "plan collection is readable; nothing to repair")
				return nil
			}
			fmt.Fprintf(out, "corrupt plan collection moved to %s\n", backup)
			return nil
		},
	}
}

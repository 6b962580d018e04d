package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"staffledger/pkg/composables"
)

func newShowUsersCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "show-users",
		Short: "Print registered staff, hire date order",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			pool, err := connectDB(ctx)
			if err != nil {
				return withCode(exitDB, err)
			}
			defer pool.Close()

			svc := buildDirectoryService()
			members, err := svc.ListStaff(composables.WithPool(ctx, pool), limit)
			if err != nil {
				return withCode(exitDB, fmt.Errorf("list staff: %w", err))
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "USER_ID\tNAME\tBIRTHDAY\tHIRE_DATE")
			for _, m := range members {
				fmt.Fprintf(
					w, "%s\t%s\t%s\t%s\n",
					m.UserID(),
					m.Name(),
					fmtDate(m.Birthday()),
					fmtDate(m.HireDate()),
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of rows (0 = all)")
	return cmd
}

func fmtDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

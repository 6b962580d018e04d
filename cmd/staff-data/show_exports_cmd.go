package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"staffledger/pkg/composables"
)

func newShowExportsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show-exports",
		Short: "Print external systems and their export column mappings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			pool, err := connectDB(ctx)
			if err != nil {
				return withCode(exitDB, err)
			}
			defer pool.Close()

			svc := buildDirectoryService()
			poolCtx := composables.WithPool(ctx, pool)

			systems, err := svc.ListExportSystems(poolCtx)
			if err != nil {
				return withCode(exitDB, fmt.Errorf("list export systems: %w", err))
			}
			mappings, err := svc.ListExportMappings(poolCtx)
			if err != nil {
				return withCode(exitDB, fmt.Errorf("list export mappings: %w", err))
			}

			names := make(map[int]string, len(systems))
			for _, s := range systems {
				names[s.ID] = s.Name
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SYSTEM\tTABLE\tCOLUMN\tTRANSFORM")
			for _, m := range mappings {
				name := names[m.SystemID]
				if name == "" {
					name = fmt.Sprintf("#%d", m.SystemID)
				}
				transform := m.TransformID
				if transform == "" {
					transform = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, m.TableName, m.ColumnName, transform)
			}
			return w.Flush()
		},
	}
}

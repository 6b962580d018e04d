package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"staffledger/pkg/schema"
)

func newInitSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-schema",
		Short: "Create the staff ledger tables if they do not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			pool, err := connectDB(ctx)
			if err != nil {
				return withCode(exitDB, err)
			}
			defer pool.Close()

			if err := schema.Apply(ctx, pool); err != nil {
				return withCode(exitDBWrite, fmt.Errorf("apply schema: %w", err))
			}
			return writeJSONLine(map[string]string{"status": "applied"})
		},
	}
}

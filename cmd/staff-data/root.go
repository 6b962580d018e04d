package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "staff-data",
		Short:         "Staff identity ledger import/query tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newInitSchemaCmd())
	cmd.AddCommand(newImportPositionsCmd())
	cmd.AddCommand(newImportDepartmentsCmd())
	cmd.AddCommand(newImportDataCmd())
	cmd.AddCommand(newShowUsersCmd())
	cmd.AddCommand(newShowExportsCmd())
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		code := exitCode(err)
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(code)
	}
}

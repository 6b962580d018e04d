package main

import (
	"github.com/spf13/cobra"
)

func newImportDepartmentsCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "import-departments",
		Short: "Import department master data from a headerless CSV (id,name)",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := buildImportService()
			return runMasterImport(cmd.Context(), input, svc.ImportDepartments)
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Input CSV file (required)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"staffledger/modules/staff/services"
	"staffledger/pkg/composables"
)

type rowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

type masterSummary struct {
	Status   string     `json:"status"`
	Input    string     `json:"input"`
	Inserted int        `json:"inserted"`
	Skipped  int        `json:"skipped"`
	Failed   int        `json:"failed"`
	Errors   []rowError `json:"errors,omitempty"`
}

func newImportPositionsCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "import-positions",
		Short: "Import position master data from a headerless CSV (id,name)",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := buildImportService()
			return runMasterImport(cmd.Context(), input, svc.ImportPositions)
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Input CSV file (required)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runMasterImport(
	ctx context.Context,
	input string,
	importFn func(context.Context, []services.MasterRow) (*services.MasterReport, error),
) error {
	if strings.TrimSpace(input) == "" {
		return withCode(exitUsage, fmt.Errorf("--input is required"))
	}

	rows, err := parseMasterCSV(input)
	if err != nil {
		return withCode(exitValidation, fmt.Errorf("%s: %w", input, err))
	}

	pool, err := connectDB(ctx)
	if err != nil {
		return withCode(exitDB, err)
	}
	defer pool.Close()

	report, err := importFn(composables.WithPool(ctx, pool), rows)
	if err != nil {
		if report != nil {
			_ = writeJSONLine(masterSummaryFrom(input, "aborted", report))
		}
		return withCode(exitDB, err)
	}
	return writeJSONLine(masterSummaryFrom(input, "done", report))
}

func masterSummaryFrom(input, status string, report *services.MasterReport) masterSummary {
	s := masterSummary{
		Status:   status,
		Input:    input,
		Inserted: report.Inserted,
		Skipped:  report.Skipped,
		Failed:   report.Failed,
	}
	for _, row := range report.Rows {
		if row.Err != nil {
			s.Errors = append(s.Errors, rowError{Line: row.Line, Message: row.Err.Error()})
		}
	}
	return s
}

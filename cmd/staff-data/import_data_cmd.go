package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"staffledger/modules/staff/services"
	"staffledger/pkg/composables"
)

type dataSummary struct {
	Status     string     `json:"status"`
	Input      string     `json:"input"`
	Registered int        `json:"registered"`
	Skipped    int        `json:"skipped"`
	Failed     int        `json:"failed"`
	Errors     []rowError `json:"errors,omitempty"`
}

func newImportDataCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "import-data",
		Short: "Import the staff identity feed from a CSV with header",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if strings.TrimSpace(input) == "" {
				return withCode(exitUsage, fmt.Errorf("--input is required"))
			}

			rows, err := parseDataCSV(input)
			if err != nil {
				return withCode(exitValidation, fmt.Errorf("%s: %w", input, err))
			}

			pool, err := connectDB(ctx)
			if err != nil {
				return withCode(exitDB, err)
			}
			defer pool.Close()

			svc := buildImportService()
			report, err := svc.ImportData(composables.WithPool(ctx, pool), rows)
			if err != nil {
				if report != nil {
					_ = writeJSONLine(dataSummaryFrom(input, "aborted", report))
				}
				return withCode(exitDB, err)
			}
			return writeJSONLine(dataSummaryFrom(input, "done", report))
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Input CSV file (required)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func parseDataCSV(path string) ([]services.DataRow, error) {
	r, closeFn, err := openCSV(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = closeFn() }()

	header, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	// The feed is written with its row index as a nameless first column.
	if len(header) > 0 && header[0] == "" {
		header[0] = "index"
	}
	required := []string{"employee_number", "name", "position_id", "hire_date"}
	allowed := []string{
		"index", "employee_number", "name", "position_id", "hire_date", "birthday",
		"d_number", "department_id", "card_uid", "card_management_id", "system_id",
	}
	if err := requireHeader(header, required, allowed); err != nil {
		return nil, err
	}
	idx := headerIndex(header)

	var rows []services.DataRow
	line := 1
	for {
		line++
		rec, err := r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(rec) == 0 || (len(rec) == 1 && strings.TrimSpace(rec[0]) == "") {
			continue
		}

		get := func(name string) string {
			i, ok := idx[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		rows = append(rows, services.DataRow{
			Line:             line,
			EmployeeNumber:   get("employee_number"),
			Name:             get("name"),
			PositionID:       get("position_id"),
			HireDate:         get("hire_date"),
			Birthday:         get("birthday"),
			DNumber:          get("d_number"),
			DepartmentID:     get("department_id"),
			CardUID:          get("card_uid"),
			CardManagementID: get("card_management_id"),
			SystemID:         get("system_id"),
		})
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no data rows found")
	}
	return rows, nil
}

func dataSummaryFrom(input, status string, report *services.ImportReport) dataSummary {
	s := dataSummary{
		Status:     status,
		Input:      input,
		Registered: report.Registered,
		Skipped:    report.Skipped,
		Failed:     report.Failed,
	}
	for _, row := range report.Rows {
		if row.Err != nil {
			s.Errors = append(s.Errors, rowError{Line: row.Line, Message: row.Err.Error()})
		}
	}
	return s
}

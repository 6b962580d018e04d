package services

// Per-row outcomes of an import batch. Reports carry one entry per input row
// in input order so callers can emit line-accurate summaries.

type RowOutcome string

const (
	RowRegistered RowOutcome = "registered"
	RowSkipped    RowOutcome = "skipped"
	RowFailed     RowOutcome = "failed"
)

// RowResult records what happened to one identity row of the master feed.
type RowResult struct {
	Line           int
	EmployeeNumber string
	Outcome        RowOutcome
	Err            error
}

type ImportReport struct {
	Registered int
	Skipped    int
	Failed     int
	Rows       []RowResult
}

func (r *ImportReport) add(res RowResult) {
	switch res.Outcome {
	case RowRegistered:
		r.Registered++
	case RowSkipped:
		r.Skipped++
	case RowFailed:
		r.Failed++
	}
	r.Rows = append(r.Rows, res)
}

// MasterRow is one parsed line of a headerless master CSV (positions or
// departments).
type MasterRow struct {
	Line int
	ID   int
	Name string
}

type MasterRowResult struct {
	Line    int
	ID      int
	Outcome RowOutcome
	Err     error
}

type MasterReport struct {
	Inserted int
	Skipped  int
	Failed   int
	Rows     []MasterRowResult
}

func (r *MasterReport) add(res MasterRowResult) {
	switch res.Outcome {
	case RowRegistered:
		r.Inserted++
	case RowSkipped:
		r.Skipped++
	case RowFailed:
		r.Failed++
	}
	r.Rows = append(r.Rows, res)
}

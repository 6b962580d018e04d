package staff

import "time"

// History ledger rows. All of them reference the owning identity by key and
// are append-only: the import pipeline creates them and nothing in it ever
// updates or deletes one.

// EmploymentRecord ties an employee number and a position to an identity.
// EndDate stays open (zero); closing out superseded records is outside the
// import pipeline.
type EmploymentRecord struct {
	ID             int64
	UserID         string
	EmployeeNumber string
	PositionID     int
	StartDate      time.Time
	EndDate        time.Time
	UpdatedAt      time.Time
}

// DNumber is a physical access token. Activity is a point-in-time flag, not
// a date range.
type DNumber struct {
	ID        int64
	UserID    string
	Value     string
	Active    bool
	UpdatedAt time.Time
}

type Card struct {
	UID          string
	UserID       string
	ManagementID string
	Active       bool
	UpdatedAt    time.Time
}

type SystemID struct {
	ID        int64
	UserID    string
	Value     string
	Active    bool
	UpdatedAt time.Time
}

// DepartmentMembership joins an identity to a department. Composite key; a
// member may hold several simultaneous memberships.
type DepartmentMembership struct {
	UserID       string
	DepartmentID int
	UpdatedAt    time.Time
}

// HistorySet is the full set of ledger rows implied by one import row,
// staged for a single atomic commit. Employment is always present; the rest
// follow the optional fields of the feed.
type HistorySet struct {
	Employment EmploymentRecord
	DNumber    *DNumber
	Card       *Card
	SystemID   *SystemID
	Membership *DepartmentMembership
}

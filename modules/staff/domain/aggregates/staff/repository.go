package staff

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound            = errors.New("staff member not found")
	ErrEmployeeNumberTaken = errors.New("employee number already registered")
)

type Repository interface {
	Create(ctx context.Context, s Staff) error
	ListByHireDate(ctx context.Context, limit int) ([]Staff, error)
}

// HistoryRepository is the append-only surface over the ledgers. The
// employee-number existence check runs against the employment ledger, not
// the staff table: an identity without an employment row counts as not yet
// registered.
type HistoryRepository interface {
	ExistsByEmployeeNumber(ctx context.Context, employeeNumber string) (bool, error)
	AppendEmployment(ctx context.Context, rec EmploymentRecord) error
	AppendDNumber(ctx context.Context, rec DNumber) error
	AppendCard(ctx context.Context, rec Card) error
	AppendSystemID(ctx context.Context, rec SystemID) error
	AppendMembership(ctx context.Context, rec DepartmentMembership) error
}

// FlatUser is the denormalized projection of one identity: exactly one
// representative row per relation, nil when the relation is empty.
type FlatUser struct {
	UserID           string
	Name             string
	HireDate         *time.Time
	EmployeeNumber   *string
	PositionID       *int
	PositionName     *string
	DNumber          *string
	CardUID          *string
	CardManagementID *string
	SystemID         *string
	DepartmentID     *int
	DepartmentName   *string
}

type DirectoryRepository interface {
	Project(ctx context.Context, userID string) (FlatUser, error)
	ListFlat(ctx context.Context, limit int) ([]FlatUser, error)
}

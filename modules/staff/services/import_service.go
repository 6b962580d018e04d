package services

import (
	"context"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"

	"staffledger/modules/staff/domain/aggregates/staff"
	"staffledger/modules/staff/domain/entities/department"
	"staffledger/modules/staff/domain/entities/position"
	"staffledger/pkg/composables"
	"staffledger/pkg/eventbus"
)

// Seams for tests; production wiring never touches these.
var (
	inTxFn    = composables.InTx
	newUserID = uuid.NewString
	pingFn    = func(ctx context.Context) error {
		pool, err := composables.UsePool(ctx)
		if err != nil {
			return err
		}
		return pool.Ping(ctx)
	}
)

// DataRow is one line of the identity feed, fields still in wire form.
// Staging validates and converts them before any transaction starts.
type DataRow struct {
	Line             int
	EmployeeNumber   string
	Name             string
	PositionID       string
	HireDate         string
	Birthday         string
	DNumber          string
	DepartmentID     string
	CardUID          string
	CardManagementID string
	SystemID         string
}

type ImportService struct {
	staff       staff.Repository
	history     staff.HistoryRepository
	positions   position.Repository
	departments department.Repository
	publisher   eventbus.EventBus
	rowTimeout  time.Duration
}

func NewImportService(
	staffRepo staff.Repository,
	historyRepo staff.HistoryRepository,
	positionRepo position.Repository,
	departmentRepo department.Repository,
	publisher eventbus.EventBus,
	rowTimeout time.Duration,
) *ImportService {
	return &ImportService{
		staff:       staffRepo,
		history:     historyRepo,
		positions:   positionRepo,
		departments: departmentRepo,
		publisher:   publisher,
		rowTimeout:  rowTimeout,
	}
}

// ImportData registers identities from the master feed, one transaction per
// row. A failed row never poisons its neighbors; after each failure the pool
// is pinged, and an unreachable database aborts the rest of the batch.
func (s *ImportService) ImportData(ctx context.Context, rows []DataRow) (*ImportReport, error) {
	report := &ImportReport{}
	for _, row := range rows {
		res := s.importRow(ctx, row)
		report.add(res)
		if res.Outcome == RowFailed {
			if err := pingFn(ctx); err != nil {
				return report, gerrors.Wrap(err, "database unreachable after row failure")
			}
		}
	}
	return report, nil
}

func (s *ImportService) importRow(ctx context.Context, row DataRow) RowResult {
	staged, err := stageRow(row)
	if err != nil {
		return RowResult{Line: row.Line, EmployeeNumber: row.EmployeeNumber, Outcome: RowFailed, Err: err}
	}

	rowCtx := ctx
	if s.rowTimeout > 0 {
		var cancel context.CancelFunc
		rowCtx, cancel = context.WithTimeout(ctx, s.rowTimeout)
		defer cancel()
	}

	var (
		skipped bool
		member  staff.Staff
		history staff.HistorySet
	)
	err = inTxFn(rowCtx, func(txCtx context.Context) error {
		exists, err := s.history.ExistsByEmployeeNumber(txCtx, staged.employeeNumber)
		if err != nil {
			return err
		}
		if exists {
			skipped = true
			return nil
		}

		ok, err := s.positions.Exists(txCtx, staged.positionID)
		if err != nil {
			return err
		}
		if !ok {
			return gerrors.Wrapf(position.ErrNotFound, "position %d", staged.positionID)
		}
		if staged.departmentID != nil {
			ok, err := s.departments.Exists(txCtx, *staged.departmentID)
			if err != nil {
				return err
			}
			if !ok {
				return gerrors.Wrapf(department.ErrNotFound, "department %d", *staged.departmentID)
			}
		}

		member = staff.New(newUserID(), staged.name, staged.birthday, staged.hireDate)
		if err := s.staff.Create(txCtx, member); err != nil {
			return err
		}

		history = staged.historySet(member.UserID())
		if err := s.history.AppendEmployment(txCtx, history.Employment); err != nil {
			return err
		}
		if history.DNumber != nil {
			if err := s.history.AppendDNumber(txCtx, *history.DNumber); err != nil {
				return err
			}
		}
		if history.Card != nil {
			if err := s.history.AppendCard(txCtx, *history.Card); err != nil {
				return err
			}
		}
		if history.SystemID != nil {
			if err := s.history.AppendSystemID(txCtx, *history.SystemID); err != nil {
				return err
			}
		}
		if history.Membership != nil {
			if err := s.history.AppendMembership(txCtx, *history.Membership); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return RowResult{Line: row.Line, EmployeeNumber: staged.employeeNumber, Outcome: RowFailed, Err: err}
	}
	if skipped {
		return RowResult{Line: row.Line, EmployeeNumber: staged.employeeNumber, Outcome: RowSkipped}
	}

	// Publish only once the row's transaction has committed.
	s.publisher.Publish(staff.NewCreatedEvent(member, history))
	return RowResult{Line: row.Line, EmployeeNumber: staged.employeeNumber, Outcome: RowRegistered}
}

// ImportPositions inserts missing position master rows. Existing ids are
// skipped, never updated.
func (s *ImportService) ImportPositions(ctx context.Context, rows []MasterRow) (*MasterReport, error) {
	report := &MasterReport{}
	for _, row := range rows {
		res := MasterRowResult{Line: row.Line, ID: row.ID}
		err := inTxFn(ctx, func(txCtx context.Context) error {
			exists, err := s.positions.Exists(txCtx, row.ID)
			if err != nil {
				return err
			}
			if exists {
				res.Outcome = RowSkipped
				return nil
			}
			res.Outcome = RowRegistered
			return s.positions.Create(txCtx, &position.Position{ID: row.ID, Name: row.Name})
		})
		if err != nil {
			res.Outcome = RowFailed
			res.Err = err
		}
		report.add(res)
		if res.Outcome == RowFailed {
			if err := pingFn(ctx); err != nil {
				return report, gerrors.Wrap(err, "database unreachable after row failure")
			}
		}
	}
	return report, nil
}

// ImportDepartments inserts missing department master rows, stamping the
// validity window open at the run date.
func (s *ImportService) ImportDepartments(ctx context.Context, rows []MasterRow) (*MasterReport, error) {
	report := &MasterReport{}
	startDate := time.Now().UTC()
	for _, row := range rows {
		res := MasterRowResult{Line: row.Line, ID: row.ID}
		err := inTxFn(ctx, func(txCtx context.Context) error {
			exists, err := s.departments.Exists(txCtx, row.ID)
			if err != nil {
				return err
			}
			if exists {
				res.Outcome = RowSkipped
				return nil
			}
			res.Outcome = RowRegistered
			return s.departments.Create(txCtx, &department.Department{
				ID:        row.ID,
				Name:      row.Name,
				StartDate: startDate,
			})
		})
		if err != nil {
			res.Outcome = RowFailed
			res.Err = err
		}
		report.add(res)
		if res.Outcome == RowFailed {
			if err := pingFn(ctx); err != nil {
				return report, gerrors.Wrap(err, "database unreachable after row failure")
			}
		}
	}
	return report, nil
}

// stagedRow holds a fully validated row, ready to commit.
type stagedRow struct {
	employeeNumber string
	name           string
	positionID     int
	hireDate       time.Time
	birthday       time.Time
	dNumber        string
	departmentID   *int
	cardUID        string
	cardMgmtID     string
	systemID       string
}

func stageRow(row DataRow) (*stagedRow, error) {
	if row.EmployeeNumber == "" {
		return nil, gerrors.New("employee_number is required")
	}
	if row.Name == "" {
		return nil, gerrors.New("name is required")
	}

	positionID, err := parseIntField("position_id", row.PositionID)
	if err != nil {
		return nil, err
	}
	hireDate, err := parseDateField("hire_date", row.HireDate)
	if err != nil {
		return nil, err
	}
	if hireDate.IsZero() {
		return nil, gerrors.New("hire_date is required")
	}
	birthday, err := parseDateField("birthday", row.Birthday)
	if err != nil {
		return nil, err
	}

	staged := &stagedRow{
		employeeNumber: row.EmployeeNumber,
		name:           row.Name,
		positionID:     positionID,
		hireDate:       hireDate,
		birthday:       birthday,
		dNumber:        row.DNumber,
		cardUID:        row.CardUID,
		cardMgmtID:     row.CardManagementID,
		systemID:       row.SystemID,
	}
	if row.DepartmentID != "" {
		departmentID, err := parseIntField("department_id", row.DepartmentID)
		if err != nil {
			return nil, err
		}
		staged.departmentID = &departmentID
	}
	return staged, nil
}

func (r *stagedRow) historySet(userID string) staff.HistorySet {
	set := staff.HistorySet{
		Employment: staff.EmploymentRecord{
			UserID:         userID,
			EmployeeNumber: r.employeeNumber,
			PositionID:     r.positionID,
			StartDate:      r.hireDate,
		},
	}
	if r.dNumber != "" {
		set.DNumber = &staff.DNumber{UserID: userID, Value: r.dNumber, Active: true}
	}
	if r.cardUID != "" {
		set.Card = &staff.Card{UID: r.cardUID, UserID: userID, ManagementID: r.cardMgmtID, Active: true}
	}
	if r.systemID != "" {
		set.SystemID = &staff.SystemID{UserID: userID, Value: r.systemID, Active: true}
	}
	if r.departmentID != nil {
		set.Membership = &staff.DepartmentMembership{UserID: userID, DepartmentID: *r.departmentID}
	}
	return set
}

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"staffledger/modules/staff/domain/aggregates/staff"
	"staffledger/modules/staff/domain/entities/department"
	"staffledger/modules/staff/domain/entities/position"
)

// passthroughTx runs the callback without a database; repositories in these
// tests are in-memory, so there is nothing to commit.
func passthroughTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

type mockStaffRepo struct {
	created []staff.Staff
	err     error
}

func (m *mockStaffRepo) Create(ctx context.Context, s staff.Staff) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, s)
	return nil
}
func (m *mockStaffRepo) ListByHireDate(ctx context.Context, limit int) ([]staff.Staff, error) {
	return m.created, nil
}

type mockHistoryRepo struct {
	known       map[string]bool
	employment  []staff.EmploymentRecord
	dNumbers    []staff.DNumber
	cards       []staff.Card
	systemIDs   []staff.SystemID
	memberships []staff.DepartmentMembership
	appendErr   error
}

func (m *mockHistoryRepo) ExistsByEmployeeNumber(ctx context.Context, n string) (bool, error) {
	return m.known[n], nil
}
func (m *mockHistoryRepo) AppendEmployment(ctx context.Context, rec staff.EmploymentRecord) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.employment = append(m.employment, rec)
	return nil
}
func (m *mockHistoryRepo) AppendDNumber(ctx context.Context, rec staff.DNumber) error {
	m.dNumbers = append(m.dNumbers, rec)
	return nil
}
func (m *mockHistoryRepo) AppendCard(ctx context.Context, rec staff.Card) error {
	m.cards = append(m.cards, rec)
	return nil
}
func (m *mockHistoryRepo) AppendSystemID(ctx context.Context, rec staff.SystemID) error {
	m.systemIDs = append(m.systemIDs, rec)
	return nil
}
func (m *mockHistoryRepo) AppendMembership(ctx context.Context, rec staff.DepartmentMembership) error {
	m.memberships = append(m.memberships, rec)
	return nil
}

type mockPositionRepo struct {
	existing map[int]string
	created  []*position.Position
}

func (m *mockPositionRepo) Exists(ctx context.Context, id int) (bool, error) {
	_, ok := m.existing[id]
	return ok, nil
}
func (m *mockPositionRepo) Create(ctx context.Context, p *position.Position) error {
	if m.existing == nil {
		m.existing = map[int]string{}
	}
	m.existing[p.ID] = p.Name
	m.created = append(m.created, p)
	return nil
}

type mockDepartmentRepo struct {
	existing map[int]string
	created  []*department.Department
	err      error
}

func (m *mockDepartmentRepo) Exists(ctx context.Context, id int) (bool, error) {
	_, ok := m.existing[id]
	return ok, nil
}
func (m *mockDepartmentRepo) Create(ctx context.Context, d *department.Department) error {
	if m.err != nil {
		return m.err
	}
	if m.existing == nil {
		m.existing = map[int]string{}
	}
	m.existing[d.ID] = d.Name
	m.created = append(m.created, d)
	return nil
}

type stubPublisher struct {
	events []interface{}
}

func (s *stubPublisher) Publish(args ...interface{})   { s.events = append(s.events, args...) }
func (s *stubPublisher) Subscribe(handler interface{}) {}
func (s *stubPublisher) SubscribersCount() int         { return 0 }

func newTestImportService(
	staffRepo *mockStaffRepo,
	historyRepo *mockHistoryRepo,
	positionRepo *mockPositionRepo,
	departmentRepo *mockDepartmentRepo,
	publisher *stubPublisher,
) *ImportService {
	return NewImportService(staffRepo, historyRepo, positionRepo, departmentRepo, publisher, time.Second)
}

func swapSeams(t *testing.T) {
	t.Helper()
	origInTx, origPing, origID := inTxFn, pingFn, newUserID
	t.Cleanup(func() {
		inTxFn, pingFn, newUserID = origInTx, origPing, origID
	})
	inTxFn = passthroughTx
	pingFn = func(ctx context.Context) error { return nil }
}

func TestImportData_RegistersNewIdentity(t *testing.T) {
	swapSeams(t)
	newUserID = func() string { return "uid-1" }

	staffRepo := &mockStaffRepo{}
	historyRepo := &mockHistoryRepo{}
	positionRepo := &mockPositionRepo{existing: map[int]string{3: "Engineer"}}
	departmentRepo := &mockDepartmentRepo{existing: map[int]string{7: "R&D"}}
	publisher := &stubPublisher{}
	svc := newTestImportService(staffRepo, historyRepo, positionRepo, departmentRepo, publisher)

	report, err := svc.ImportData(context.Background(), []DataRow{{
		Line:             1,
		EmployeeNumber:   "E100",
		Name:             "Yamada Taro",
		PositionID:       "3",
		HireDate:         "2024-04-01",
		Birthday:         "1990-01-15",
		DNumber:          "D0042",
		DepartmentID:     "7",
		CardUID:          "CARD-1",
		CardManagementID: "MGMT-1",
		SystemID:         "sys-yamada",
	}})
	require.NoError(t, err)
	require.Equal(t, 1, report.Registered)
	require.Equal(t, 0, report.Skipped)
	require.Equal(t, 0, report.Failed)

	require.Len(t, staffRepo.created, 1)
	require.Equal(t, "uid-1", staffRepo.created[0].UserID())
	require.Equal(t, "Yamada Taro", staffRepo.created[0].Name())

	require.Len(t, historyRepo.employment, 1)
	require.Equal(t, "E100", historyRepo.employment[0].EmployeeNumber)
	require.Equal(t, 3, historyRepo.employment[0].PositionID)
	require.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), historyRepo.employment[0].StartDate)
	require.Len(t, historyRepo.dNumbers, 1)
	require.True(t, historyRepo.dNumbers[0].Active)
	require.Len(t, historyRepo.cards, 1)
	require.Equal(t, "MGMT-1", historyRepo.cards[0].ManagementID)
	require.Len(t, historyRepo.systemIDs, 1)
	require.Len(t, historyRepo.memberships, 1)
	require.Equal(t, 7, historyRepo.memberships[0].DepartmentID)

	require.Len(t, publisher.events, 1)
	ev, ok := publisher.events[0].(*staff.CreatedEvent)
	require.True(t, ok)
	require.Equal(t, "uid-1", ev.Result.UserID())
}

func TestImportData_SkipsKnownEmployeeNumber(t *testing.T) {
	swapSeams(t)

	staffRepo := &mockStaffRepo{}
	historyRepo := &mockHistoryRepo{known: map[string]bool{"E100": true}}
	positionRepo := &mockPositionRepo{existing: map[int]string{3: "Engineer"}}
	svc := newTestImportService(staffRepo, historyRepo, positionRepo, &mockDepartmentRepo{}, &stubPublisher{})

	report, err := svc.ImportData(context.Background(), []DataRow{{
		Line: 1, EmployeeNumber: "E100", Name: "Yamada Taro", PositionID: "3", HireDate: "2024-04-01",
	}})
	require.NoError(t, err)
	require.Equal(t, 1, report.Skipped)
	require.Empty(t, staffRepo.created)
	require.Empty(t, historyRepo.employment)
}

func TestImportData_OptionalFieldsOmitted(t *testing.T) {
	swapSeams(t)
	newUserID = func() string { return "uid-2" }

	historyRepo := &mockHistoryRepo{}
	positionRepo := &mockPositionRepo{existing: map[int]string{3: "Engineer"}}
	svc := newTestImportService(&mockStaffRepo{}, historyRepo, positionRepo, &mockDepartmentRepo{}, &stubPublisher{})

	report, err := svc.ImportData(context.Background(), []DataRow{{
		Line: 1, EmployeeNumber: "E200", Name: "Sato Hanako", PositionID: "3", HireDate: "2024-04-01",
	}})
	require.NoError(t, err)
	require.Equal(t, 1, report.Registered)
	require.Len(t, historyRepo.employment, 1)
	require.Empty(t, historyRepo.dNumbers)
	require.Empty(t, historyRepo.cards)
	require.Empty(t, historyRepo.systemIDs)
	require.Empty(t, historyRepo.memberships)
}

func TestImportData_RowFailuresAreIsolated(t *testing.T) {
	swapSeams(t)
	ids := []string{"uid-a", "uid-b"}
	newUserID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}

	staffRepo := &mockStaffRepo{}
	historyRepo := &mockHistoryRepo{}
	positionRepo := &mockPositionRepo{existing: map[int]string{3: "Engineer"}}
	publisher := &stubPublisher{}
	svc := newTestImportService(staffRepo, historyRepo, positionRepo, &mockDepartmentRepo{}, publisher)

	report, err := svc.ImportData(context.Background(), []DataRow{
		{Line: 1, EmployeeNumber: "E1", Name: "A", PositionID: "3", HireDate: "2024-04-01"},
		{Line: 2, EmployeeNumber: "E2", Name: "B", PositionID: "99", HireDate: "2024-04-01"},
		{Line: 3, EmployeeNumber: "E3", Name: "C", PositionID: "3", HireDate: "2024-04-02"},
	})
	require.NoError(t, err)
	require.Equal(t, 2, report.Registered)
	require.Equal(t, 1, report.Failed)
	require.Len(t, report.Rows, 3)
	require.Equal(t, RowFailed, report.Rows[1].Outcome)
	require.ErrorIs(t, report.Rows[1].Err, position.ErrNotFound)
	require.Len(t, staffRepo.created, 2)
	require.Len(t, publisher.events, 2, "failed rows must not publish")
}

func TestImportData_NoEventWhenCommitFails(t *testing.T) {
	swapSeams(t)
	newUserID = func() string { return "uid-c" }
	inTxFn = func(ctx context.Context, fn func(context.Context) error) error {
		if err := fn(ctx); err != nil {
			return err
		}
		return errors.New("commit failed")
	}

	positionRepo := &mockPositionRepo{existing: map[int]string{3: "Engineer"}}
	publisher := &stubPublisher{}
	svc := newTestImportService(&mockStaffRepo{}, &mockHistoryRepo{}, positionRepo, &mockDepartmentRepo{}, publisher)

	report, err := svc.ImportData(context.Background(), []DataRow{
		{Line: 1, EmployeeNumber: "E1", Name: "A", PositionID: "3", HireDate: "2024-04-01"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, report.Failed)
	require.Empty(t, publisher.events, "events fire only after a durable commit")
}

func TestImportData_RowTimeoutFailsRow(t *testing.T) {
	swapSeams(t)
	inTxFn = func(ctx context.Context, fn func(context.Context) error) error {
		<-ctx.Done()
		return ctx.Err()
	}

	positionRepo := &mockPositionRepo{existing: map[int]string{3: "Engineer"}}
	svc := NewImportService(&mockStaffRepo{}, &mockHistoryRepo{}, positionRepo, &mockDepartmentRepo{}, &stubPublisher{}, time.Millisecond)

	report, err := svc.ImportData(context.Background(), []DataRow{
		{Line: 1, EmployeeNumber: "E1", Name: "A", PositionID: "3", HireDate: "2024-04-01"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, report.Failed)
	require.ErrorIs(t, report.Rows[0].Err, context.DeadlineExceeded)
}

func TestImportData_ParseFailureBeforeTransaction(t *testing.T) {
	swapSeams(t)
	inTxFn = func(ctx context.Context, fn func(context.Context) error) error {
		t.Fatal("transaction must not start for an unparseable row")
		return nil
	}

	svc := newTestImportService(&mockStaffRepo{}, &mockHistoryRepo{}, &mockPositionRepo{}, &mockDepartmentRepo{}, &stubPublisher{})

	report, err := svc.ImportData(context.Background(), []DataRow{
		{Line: 1, EmployeeNumber: "E1", Name: "A", PositionID: "not-a-number", HireDate: "2024-04-01"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, report.Failed)
	require.Error(t, report.Rows[0].Err)
}

func TestImportData_MissingRequiredFields(t *testing.T) {
	swapSeams(t)

	svc := newTestImportService(&mockStaffRepo{}, &mockHistoryRepo{}, &mockPositionRepo{}, &mockDepartmentRepo{}, &stubPublisher{})

	report, err := svc.ImportData(context.Background(), []DataRow{
		{Line: 1, Name: "A", PositionID: "3", HireDate: "2024-04-01"},
		{Line: 2, EmployeeNumber: "E2", PositionID: "3", HireDate: "2024-04-01"},
		{Line: 3, EmployeeNumber: "E3", Name: "C", PositionID: "3"},
	})
	require.NoError(t, err)
	require.Equal(t, 3, report.Failed)
}

func TestImportData_AbortsWhenDatabaseUnreachable(t *testing.T) {
	swapSeams(t)
	pingFn = func(ctx context.Context) error { return errors.New("connection refused") }

	svc := newTestImportService(&mockStaffRepo{}, &mockHistoryRepo{}, &mockPositionRepo{}, &mockDepartmentRepo{}, &stubPublisher{})

	report, err := svc.ImportData(context.Background(), []DataRow{
		{Line: 1, EmployeeNumber: "E1", Name: "A", PositionID: "99", HireDate: "2024-04-01"},
		{Line: 2, EmployeeNumber: "E2", Name: "B", PositionID: "99", HireDate: "2024-04-01"},
	})
	require.Error(t, err)
	require.Len(t, report.Rows, 1, "batch stops after the first failure when the pool is gone")
}

func TestImportData_UnknownDepartmentFailsRow(t *testing.T) {
	swapSeams(t)
	newUserID = func() string { return "uid-3" }

	staffRepo := &mockStaffRepo{}
	positionRepo := &mockPositionRepo{existing: map[int]string{3: "Engineer"}}
	svc := newTestImportService(staffRepo, &mockHistoryRepo{}, positionRepo, &mockDepartmentRepo{}, &stubPublisher{})

	report, err := svc.ImportData(context.Background(), []DataRow{
		{Line: 1, EmployeeNumber: "E1", Name: "A", PositionID: "3", HireDate: "2024-04-01", DepartmentID: "42"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, report.Failed)
	require.ErrorIs(t, report.Rows[0].Err, department.ErrNotFound)
}

func TestImportPositions_SkipsExisting(t *testing.T) {
	swapSeams(t)

	positionRepo := &mockPositionRepo{existing: map[int]string{1: "Manager"}}
	svc := newTestImportService(&mockStaffRepo{}, &mockHistoryRepo{}, positionRepo, &mockDepartmentRepo{}, &stubPublisher{})

	report, err := svc.ImportPositions(context.Background(), []MasterRow{
		{Line: 1, ID: 1, Name: "Manager"},
		{Line: 2, ID: 2, Name: "Engineer"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, report.Inserted)
	require.Equal(t, 1, report.Skipped)
	require.Len(t, positionRepo.created, 1)
	require.Equal(t, 2, positionRepo.created[0].ID)
}

func TestImportDepartments_StampsStartDate(t *testing.T) {
	swapSeams(t)

	departmentRepo := &mockDepartmentRepo{}
	svc := newTestImportService(&mockStaffRepo{}, &mockHistoryRepo{}, &mockPositionRepo{}, departmentRepo, &stubPublisher{})

	before := time.Now().UTC().Add(-time.Minute)
	report, err := svc.ImportDepartments(context.Background(), []MasterRow{
		{Line: 1, ID: 10, Name: "Sales"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, report.Inserted)
	require.Len(t, departmentRepo.created, 1)
	require.True(t, departmentRepo.created[0].StartDate.After(before))
	require.True(t, departmentRepo.created[0].EndDate.IsZero())
}

func TestImportDepartments_FailureCountsAndContinues(t *testing.T) {
	swapSeams(t)

	departmentRepo := &mockDepartmentRepo{err: errors.New("insert failed")}
	svc := newTestImportService(&mockStaffRepo{}, &mockHistoryRepo{}, &mockPositionRepo{}, departmentRepo, &stubPublisher{})

	report, err := svc.ImportDepartments(context.Background(), []MasterRow{
		{Line: 1, ID: 10, Name: "Sales"},
		{Line: 2, ID: 11, Name: "Support"},
	})
	require.NoError(t, err)
	require.Equal(t, 2, report.Failed)
	require.Len(t, report.Rows, 2)
}

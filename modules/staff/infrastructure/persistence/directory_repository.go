package persistence

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"staffledger/modules/staff/domain/aggregates/staff"
	"staffledger/pkg/composables"
	"staffledger/pkg/mapping"
)

// directoryQuery flattens one identity into a single row. Each relation
// contributes at most one representative record; the orderings below make the
// pick deterministic:
//   - employment: latest start date wins, newest ledger row breaks ties
//   - d-number, system id: active entries win, newest ledger row breaks ties
//   - card: active cards win, lowest uid breaks ties
//   - membership: lowest department id wins
const directoryQuery = `
	SELECT
		s.user_id,
		s.name,
		s.hire_date,
		emp.employee_number,
		emp.position_id,
		p.position_name,
		dn.d_number,
		c.card_uid,
		c.card_management_id,
		si.system_id,
		sd.department_id,
		d.department_name
	FROM staff s
	LEFT JOIN LATERAL (
		SELECT employee_number, position_id
		FROM employee_number_history
		WHERE user_id = s.user_id
		ORDER BY start_date DESC NULLS LAST, id DESC
		LIMIT 1
	) emp ON TRUE
	LEFT JOIN positions p ON p.position_id = emp.position_id
	LEFT JOIN LATERAL (
		SELECT d_number
		FROM d_numbers
		WHERE user_id = s.user_id
		ORDER BY is_active DESC, id DESC
		LIMIT 1
	) dn ON TRUE
	LEFT JOIN LATERAL (
		SELECT card_uid, card_management_id
		FROM cards
		WHERE user_id = s.user_id
		ORDER BY is_active DESC, card_uid ASC
		LIMIT 1
	) c ON TRUE
	LEFT JOIN LATERAL (
		SELECT system_id
		FROM system_ids
		WHERE user_id = s.user_id
		ORDER BY is_active DESC, id DESC
		LIMIT 1
	) si ON TRUE
	LEFT JOIN LATERAL (
		SELECT department_id
		FROM staff_departments
		WHERE user_id = s.user_id
		ORDER BY department_id ASC
		LIMIT 1
	) sd ON TRUE
	LEFT JOIN departments d ON d.department_id = sd.department_id`

type DirectoryRepository struct{}

func NewDirectoryRepository() staff.DirectoryRepository {
	return &DirectoryRepository{}
}

func (r *DirectoryRepository) Project(ctx context.Context, userID string) (staff.FlatUser, error) {
	users, err := r.queryFlat(ctx, directoryQuery+" WHERE s.user_id = $1", userID)
	if err != nil {
		return staff.FlatUser{}, err
	}
	if len(users) == 0 {
		return staff.FlatUser{}, staff.ErrNotFound
	}
	return users[0], nil
}

func (r *DirectoryRepository) ListFlat(ctx context.Context, limit int) ([]staff.FlatUser, error) {
	query := directoryQuery + " ORDER BY s.hire_date ASC NULLS LAST, s.user_id ASC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}
	return r.queryFlat(ctx, query, args...)
}

func (r *DirectoryRepository) queryFlat(ctx context.Context, query string, args ...any) ([]staff.FlatUser, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	var users []staff.FlatUser
	for rows.Next() {
		var (
			u              staff.FlatUser
			hireDate       pgtype.Date
			employeeNumber pgtype.Text
			positionID     pgtype.Int4
			positionName   pgtype.Text
			dNumber        pgtype.Text
			cardUID        pgtype.Text
			cardMgmtID     pgtype.Text
			systemID       pgtype.Text
			departmentID   pgtype.Int4
			departmentName pgtype.Text
		)
		if err := rows.Scan(
			&u.UserID,
			&u.Name,
			&hireDate,
			&employeeNumber,
			&positionID,
			&positionName,
			&dNumber,
			&cardUID,
			&cardMgmtID,
			&systemID,
			&departmentID,
			&departmentName,
		); err != nil {
			return nil, err
		}
		u.HireDate = mapping.TimeOrNil(hireDate.Time)
		u.EmployeeNumber = textOrNil(employeeNumber)
		u.PositionID = int4OrNil(positionID)
		u.PositionName = textOrNil(positionName)
		u.DNumber = textOrNil(dNumber)
		u.CardUID = textOrNil(cardUID)
		u.CardManagementID = textOrNil(cardMgmtID)
		u.SystemID = textOrNil(systemID)
		u.DepartmentID = int4OrNil(departmentID)
		u.DepartmentName = textOrNil(departmentName)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func textOrNil(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	return mapping.Pointer(t.String)
}

func int4OrNil(v pgtype.Int4) *int {
	if !v.Valid {
		return nil
	}
	return mapping.Pointer(int(v.Int32))
}

package persistence

import (
	"context"
	"errors"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"staffledger/modules/staff/domain/aggregates/staff"
	"staffledger/pkg/composables"
)

const staffFindQuery = `SELECT user_id, name, birthday, hire_date, updated_at FROM staff`

type StaffRepository struct{}

func NewStaffRepository() staff.Repository {
	return &StaffRepository{}
}

func (r *StaffRepository) Create(ctx context.Context, s staff.Staff) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(
		ctx,
		`INSERT INTO staff (user_id, name, birthday, hire_date, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		s.UserID(),
		s.Name(),
		pgDate(s.Birthday()),
		pgDate(s.HireDate()),
		time.Now().UTC(),
	); err != nil {
		return gerrors.Wrap(err, "failed to create staff member")
	}
	return nil
}

func (r *StaffRepository) ListByHireDate(ctx context.Context, limit int) ([]staff.Staff, error) {
	query := staffFindQuery + " ORDER BY hire_date ASC NULLS LAST, user_id ASC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}
	return r.queryStaff(ctx, query, args...)
}

func (r *StaffRepository) queryStaff(ctx context.Context, query string, args ...any) ([]staff.Staff, error) {
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

	var members []staff.Staff
	for rows.Next() {
		var (
			userID    string
			name      string
			birthday  pgtype.Date
			hireDate  pgtype.Date
			updatedAt time.Time
		)
		if err := rows.Scan(&userID, &name, &birthday, &hireDate, &updatedAt); err != nil {
			return nil, err
		}
		members = append(members, staff.Hydrate(userID, name, dateValue(birthday), dateValue(hireDate), updatedAt))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return members, nil
}

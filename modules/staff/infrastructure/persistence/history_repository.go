package persistence

import (
	"context"
	"errors"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgconn"

	"staffledger/modules/staff/domain/aggregates/staff"
	"staffledger/pkg/composables"
)

type HistoryRepository struct{}

func NewHistoryRepository() staff.HistoryRepository {
	return &HistoryRepository{}
}

func (r *HistoryRepository) ExistsByEmployeeNumber(ctx context.Context, employeeNumber string) (bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, err
	}

	var exists bool
	if err := tx.QueryRow(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM employee_number_history WHERE employee_number = $1)`,
		employeeNumber,
	).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *HistoryRepository) AppendEmployment(ctx context.Context, rec staff.EmploymentRecord) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(
		ctx,
		`INSERT INTO employee_number_history (user_id, employee_number, position_id, start_date, end_date, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		rec.UserID,
		rec.EmployeeNumber,
		rec.PositionID,
		pgDate(rec.StartDate),
		pgDate(rec.EndDate),
		time.Now().UTC(),
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return staff.ErrEmployeeNumberTaken
		}
		return gerrors.Wrap(err, "failed to append employment record")
	}
	return nil
}

func (r *HistoryRepository) AppendDNumber(ctx context.Context, rec staff.DNumber) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(
		ctx,
		`INSERT INTO d_numbers (user_id, d_number, is_active, updated_at) VALUES ($1, $2, $3, $4)`,
		rec.UserID, rec.Value, rec.Active, time.Now().UTC(),
	); err != nil {
		return gerrors.Wrap(err, "failed to append d-number")
	}
	return nil
}

func (r *HistoryRepository) AppendCard(ctx context.Context, rec staff.Card) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(
		ctx,
		`INSERT INTO cards (card_uid, user_id, card_management_id, is_active, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		rec.UID, rec.UserID, rec.ManagementID, rec.Active, time.Now().UTC(),
	); err != nil {
		return gerrors.Wrap(err, "failed to append card")
	}
	return nil
}

func (r *HistoryRepository) AppendSystemID(ctx context.Context, rec staff.SystemID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(
		ctx,
		`INSERT INTO system_ids (user_id, system_id, is_active, updated_at) VALUES ($1, $2, $3, $4)`,
		rec.UserID, rec.Value, rec.Active, time.Now().UTC(),
	); err != nil {
		return gerrors.Wrap(err, "failed to append system id")
	}
	return nil
}

func (r *HistoryRepository) AppendMembership(ctx context.Context, rec staff.DepartmentMembership) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(
		ctx,
		`INSERT INTO staff_departments (user_id, department_id, updated_at) VALUES ($1, $2, $3)`,
		rec.UserID, rec.DepartmentID, time.Now().UTC(),
	); err != nil {
		return gerrors.Wrap(err, "failed to append department membership")
	}
	return nil
}

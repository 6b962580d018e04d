package persistence

import (
	"context"
	"time"

	gerrors "github.com/go-faster/errors"

	"staffledger/modules/staff/domain/entities/department"
	"staffledger/pkg/composables"
)

type DepartmentRepository struct{}

func NewDepartmentRepository() department.Repository {
	return &DepartmentRepository{}
}

func (r *DepartmentRepository) Exists(ctx context.Context, id int) (bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, err
	}

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM departments WHERE department_id = $1)`, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *DepartmentRepository) Create(ctx context.Context, d *department.Department) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(
		ctx,
		`INSERT INTO departments (department_id, department_name, extension_number, start_date, end_date, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		d.ID,
		d.Name,
		d.ExtensionNumber,
		pgDate(d.StartDate),
		pgDate(d.EndDate),
		time.Now().UTC(),
	); err != nil {
		return gerrors.Wrap(err, "failed to create department")
	}
	return nil
}
